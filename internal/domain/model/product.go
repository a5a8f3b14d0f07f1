package model

import "github.com/shopspring/decimal"

// Product is a catalog entry offered to customers.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	VATRate     int
	Image       string
	Category    string
	CategoryID  string
}

// Category groups products in the catalog.
type Category struct {
	ID       string
	Name     string
	Slug     string
	IsActive bool
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	CategoryID string
}
