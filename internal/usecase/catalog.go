package usecase

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// CatalogUseCase gives read access to products and categories.
type CatalogUseCase struct {
	products repository.ProductRepository
}

func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// Categories returns active categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	categories, err := u.products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if c.IsActive {
			active = append(active, c)
		}
	}
	return active, nil
}

func (u *CatalogUseCase) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return u.products.List(ctx, filter)
}

func (u *CatalogUseCase) Product(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}
