package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/cart"
	"github.com/polkiloo/storefront/internal/checkout"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/history"
	"github.com/polkiloo/storefront/internal/usecase"
)

// StorefrontFacade joins the use cases behind the HTTP handlers.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	carts    *cart.Registry
	checkout *checkout.Workflow
	history  *history.Mirror
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	carts *cart.Registry,
	workflow *checkout.Workflow,
	mirror *history.Mirror,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     auth,
		catalog:  catalog,
		orders:   orders,
		carts:    carts,
		checkout: workflow,
		history:  mirror,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, r model.Registration) (string, error) {
	_, token, err := f.auth.Register(ctx, r)
	return token, err
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *StorefrontFacade) ParseToken(token string) (model.UserProfile, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, id string) (*model.User, error) {
	return f.auth.Profile(ctx, id)
}

func (f *StorefrontFacade) SavePushToken(ctx context.Context, userID, token string) error {
	return f.auth.SavePushToken(ctx, userID, token)
}

func (f *StorefrontFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *StorefrontFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return f.catalog.Products(ctx, filter)
}

func (f *StorefrontFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *StorefrontFacade) Cart(ctx context.Context, sessionID string) repository.CartRepository {
	return f.carts.Get(ctx, sessionID)
}

func (f *StorefrontFacade) Submit(ctx context.Context, sub checkout.Submission) (*checkout.Result, error) {
	return f.checkout.Submit(ctx, sub)
}

func (f *StorefrontFacade) Orders(ctx context.Context, profile model.UserProfile, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.ListForUser(ctx, profile, filter)
}

func (f *StorefrontFacade) Order(ctx context.Context, profile model.UserProfile, id string) (*model.Order, error) {
	return f.orders.Get(ctx, profile, id)
}

func (f *StorefrontFacade) RecentOrders(userID string) []model.Order {
	return f.history.Recent(userID)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

// UpdateOrderStatus also updates the in-process history so customers see the
// new status without a database round trip.
func (f *StorefrontFacade) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	order, err := f.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	f.history.UpdateStatus(id, status)
	return order, nil
}

func (f *StorefrontFacade) UpdateOrderItems(ctx context.Context, id string, items []model.ItemQuantity) (*model.Order, error) {
	return f.orders.UpdateItems(ctx, id, items)
}
