package dto

import "time"

// OrderResponse represents order details returned to clients.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	UserEmail       string              `json:"user_email,omitempty"`
	UserName        string              `json:"user_name,omitempty"`
	Status          string              `json:"status"`
	StatusLabel     string              `json:"status_label"`
	Total           string              `json:"total"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	VATRate   int    `json:"vat"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ItemQuantityRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type UpdateItemsRequest struct {
	Items []ItemQuantityRequest `json:"items" binding:"required"`
}

// ErrorResponse carries a customer facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
