package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order handling lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted:
		return true
	}
	return false
}

// Label returns the customer facing name of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Bekliyor"
	case OrderStatusProcessing:
		return "İşleniyor"
	case OrderStatusCompleted:
		return "Tamamlandı"
	}
	return string(s)
}

// Order is a submitted order owned by the order backend.
type Order struct {
	ID              string
	UserID          string
	UserEmail       string
	UserName        string
	Items           []OrderItem
	Total           decimal.Decimal
	Status          OrderStatus
	DeliveryAddress string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is an immutable snapshot of a cart line at submission time.
type OrderItem struct {
	ID        string
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
	VATRate   int
}

// OrderDraft is the order creation request built from a cart.
type OrderDraft struct {
	UserID          string
	Items           []OrderItem
	Total           decimal.Decimal
	DeliveryAddress string
	Notes           string
}

// ItemQuantity changes the quantity of a single order item.
type ItemQuantity struct {
	ItemID   string
	Quantity int
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	UserID string
	Status OrderStatus
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}
