package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names order lifecycle events published to notifiers.
type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent describes a change of an order for admin notification.
type OrderEvent struct {
	Type       EventType       `json:"type"`
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id"`
	Total      decimal.Decimal `json:"total"`
	Status     OrderStatus     `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}
