package model

import "github.com/shopspring/decimal"

// CartLine is a product selected into the cart with the chosen quantity.
type CartLine struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     int             `json:"vat_rate"`
	Quantity    int             `json:"quantity"`
}

// NewCartLine copies the display data of product into a line.
func NewCartLine(product Product, quantity int) CartLine {
	if quantity < 1 {
		quantity = 1
	}
	return CartLine{
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		UnitPrice:   product.Price,
		VATRate:     product.VATRate,
		Quantity:    quantity,
	}
}
