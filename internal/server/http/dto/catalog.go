package dto

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	VATRate     int    `json:"vat"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
}
