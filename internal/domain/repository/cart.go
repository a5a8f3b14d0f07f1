package repository

import "github.com/polkiloo/storefront/internal/domain/model"

// CartRepository is the state container holding a single cart.
type CartRepository interface {
	AddItem(product model.Product, quantity int)
	RemoveItem(productID string)
	UpdateQuantity(productID string, increment bool)
	ClearItems()
	Subtract(lines []model.CartLine)
	HasItem(productID string) bool
	Lines() []model.CartLine
}
