package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/pricing"
)

const (
	defaultOrderLimit = 50
	maxOrderLimit     = 200
)

// Announcer hands order events to admin notification. Announce must not
// block and its failures never reach the caller.
type Announcer interface {
	Announce(event model.OrderEvent)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(model.OrderEvent) {}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	announcer Announcer
	now       func() time.Time
}

// NewOrderUseCase constructs OrderUseCase. A nil announcer disables notifications.
func NewOrderUseCase(orders repository.OrderRepository, announcer Announcer) *OrderUseCase {
	if announcer == nil {
		announcer = nopAnnouncer{}
	}
	return &OrderUseCase{orders: orders, announcer: announcer, now: time.Now}
}

// CreateOrder persists a pending order and announces it to admins.
func (u *OrderUseCase) CreateOrder(ctx context.Context, draft model.OrderDraft) (*model.Order, error) {
	if draft.UserID == "" {
		return nil, domainErrors.ErrNotAuthenticated
	}
	if err := ValidateItems(draft.Items); err != nil {
		return nil, err
	}

	now := u.now().UTC()
	items := make([]model.OrderItem, len(draft.Items))
	for i, item := range draft.Items {
		item.ID = uuid.NewString()
		items[i] = item
	}
	total := draft.Total
	if total.IsZero() {
		total = pricing.OrderTotal(items)
	}

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          draft.UserID,
		Items:           items,
		Total:           total,
		Status:          model.OrderStatusPending,
		DeliveryAddress: draft.DeliveryAddress,
		Notes:           draft.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	u.announce(model.EventOrderCreated, order)
	return order, nil
}

// List returns orders matching filter, newest first.
func (u *OrderUseCase) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultOrderLimit
	case filter.Limit > maxOrderLimit:
		filter.Limit = maxOrderLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return u.orders.List(ctx, filter)
}

// ListForUser restricts List to the orders of profile.
func (u *OrderUseCase) ListForUser(ctx context.Context, profile model.UserProfile, filter model.OrderFilter) ([]model.Order, error) {
	filter.UserID = profile.ID
	return u.List(ctx, filter)
}

// Get returns the order. Non admin users only see their own orders.
func (u *OrderUseCase) Get(ctx context.Context, profile model.UserProfile, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !profile.IsAdmin() && order.UserID != profile.ID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// UpdateStatus changes the handling status of an order.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if err := u.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.announce(model.EventOrderStatusChanged, order)
	return order, nil
}

// UpdateItems changes item quantities. The order total is recomputed.
func (u *OrderUseCase) UpdateItems(ctx context.Context, id string, items []model.ItemQuantity) (*model.Order, error) {
	if err := ValidateQuantities(items); err != nil {
		return nil, err
	}
	if err := u.orders.UpdateItemQuantities(ctx, id, items); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

func (u *OrderUseCase) announce(kind model.EventType, order *model.Order) {
	u.announcer.Announce(model.OrderEvent{
		Type:       kind,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Total:      order.Total,
		Status:     order.Status,
		OccurredAt: u.now().UTC(),
	})
}
