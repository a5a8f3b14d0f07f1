package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/cart"
	"github.com/polkiloo/storefront/internal/checkout"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/pricing"
)

// ColaLight is the catalog product used across tests.
func ColaLight() model.Product {
	return model.Product{
		ID:          "p-cola",
		Name:        "Cola Light",
		Description: "0.33 l",
		Price:       decimal.RequireFromString("0.65"),
		VATRate:     10,
		Category:    "Drinks",
		CategoryID:  "c-drinks",
	}
}

// CatalogFacadeStub serves a fixed catalog.
type CatalogFacadeStub struct {
	CategoriesFn func(context.Context) ([]model.Category, error)
	ProductsFn   func(context.Context, model.ProductFilter) ([]model.Product, error)
	ProductFn    func(context.Context, string) (*model.Product, error)
}

func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: "c-drinks", Name: "Drinks", Slug: "drinks", IsActive: true}}, nil
}

func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{ColaLight()}, nil
}

// Product returns ColaLight for its id and ErrNotFound otherwise.
func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	product := ColaLight()
	if id != product.ID {
		return nil, domainErrors.ErrNotFound
	}
	return &product, nil
}

// CartFacadeStub keeps one in-memory cart per session.
type CartFacadeStub struct {
	SubmitFn func(context.Context, checkout.Submission) (*checkout.Result, error)

	mu    sync.Mutex
	carts map[string]*cart.Store
}

func (s *CartFacadeStub) Cart(_ context.Context, sessionID string) repository.CartRepository {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carts == nil {
		s.carts = make(map[string]*cart.Store)
	}
	store, ok := s.carts[sessionID]
	if !ok {
		store = cart.NewStore()
		s.carts[sessionID] = store
	}
	return store
}

// Submit delegates to SubmitFn or reports a cleared submission.
func (s *CartFacadeStub) Submit(ctx context.Context, sub checkout.Submission) (*checkout.Result, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, sub)
	}
	totals := pricing.Calculate(sub.Cart.Lines())
	sub.Cart.ClearItems()
	return &checkout.Result{
		Order:  &model.Order{ID: "o1", Total: totals.Gross, Status: model.OrderStatusPending},
		Link:   "mailto:orders@example.com",
		Totals: totals,
		State:  checkout.StateCleared,
		Notice: "ok",
	}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn func(context.Context, model.UserProfile, model.OrderFilter) ([]model.Order, error)
	OrderFn  func(context.Context, model.UserProfile, string) (*model.Order, error)
	Recent   []model.Order
}

func (s OrderFacadeStub) Orders(ctx context.Context, profile model.UserProfile, filter model.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, profile, filter)
	}
	return []model.Order{{ID: "o1", UserID: profile.ID, Status: model.OrderStatusPending}}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, profile model.UserProfile, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, profile, id)
	}
	return &model.Order{ID: id, UserID: profile.ID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) RecentOrders(string) []model.Order {
	return s.Recent
}

// AdminFacadeStub simulates order management.
type AdminFacadeStub struct {
	AllOrdersFn    func(context.Context, model.OrderFilter) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	UpdateItemsFn  func(context.Context, string, []model.ItemQuantity) (*model.Order, error)
}

func (s AdminFacadeStub) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return []model.Order{{ID: "o1", Status: model.OrderStatusPending}}, nil
}

func (s AdminFacadeStub) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	return &model.Order{ID: id, Status: status}, nil
}

func (s AdminFacadeStub) UpdateOrderItems(ctx context.Context, id string, items []model.ItemQuantity) (*model.Order, error) {
	if s.UpdateItemsFn != nil {
		return s.UpdateItemsFn(ctx, id, items)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// StoreFacadeStub combines every facade stub.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	*CartFacadeStub
	OrderFacadeStub
	AdminFacadeStub
}

// NewStoreFacadeStub returns a stub with default behaviour everywhere.
func NewStoreFacadeStub() *StoreFacadeStub {
	return &StoreFacadeStub{CartFacadeStub: &CartFacadeStub{}}
}
