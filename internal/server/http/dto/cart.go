package dto

// CartLineResponse is a cart line with its formatted gross amount.
type CartLineResponse struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnitPrice   string `json:"unit_price"`
	VATRate     int    `json:"vat"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"line_total"`
}

// CartResponse is the cart with its totals.
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Net   string             `json:"net"`
	VAT   string             `json:"vat"`
	Total string             `json:"total"`
}

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=999"`
}

type UpdateItemRequest struct {
	Increment *bool `json:"increment" binding:"required"`
}

// SubmitRequest starts an order submission. CanOpen lists the channels the
// client is able to hand the summary to.
type SubmitRequest struct {
	Channel         string   `json:"channel" binding:"required"`
	CanOpen         []string `json:"can_open"`
	DeliveryAddress string   `json:"delivery_address,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

type SubmitResponse struct {
	OrderID string `json:"order_id"`
	State   string `json:"state"`
	Link    string `json:"link"`
	Message string `json:"message"`
	Total   string `json:"total"`
	Notice  string `json:"notice"`
}

// SubmitErrorResponse reports the state a submission failed in. OrderID is
// set when the order was persisted before the failure.
type SubmitErrorResponse struct {
	State    string `json:"state"`
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
	OrderID  string `json:"order_id,omitempty"`
}
