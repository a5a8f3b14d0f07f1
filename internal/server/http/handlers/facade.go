package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/checkout"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, r model.Registration) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (model.UserProfile, error)
	Profile(ctx context.Context, id string) (*model.User, error)
	SavePushToken(ctx context.Context, userID, token string) error
}

// CatalogFacade gives read access to the catalog.
type CatalogFacade interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

// CartFacade resolves cart sessions and submits their contents.
type CartFacade interface {
	Cart(ctx context.Context, sessionID string) repository.CartRepository
	Submit(ctx context.Context, sub checkout.Submission) (*checkout.Result, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, profile model.UserProfile, filter model.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, profile model.UserProfile, id string) (*model.Order, error)
	RecentOrders(userID string) []model.Order
}

// AdminFacade covers order management by administrators.
type AdminFacade interface {
	AllOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	UpdateOrderItems(ctx context.Context, id string, items []model.ItemQuantity) (*model.Order, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
	AdminFacade
}
