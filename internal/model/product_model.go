package model

type Product struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Picture     *string `json:"picture,omitempty"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"` // percentage, 0-100
	Stock       int     `json:"stock"`
	SaleCount   int     `json:"sale_count"`
	Popularity  float64 `json:"popularity"` // derived, 0-100
	Visible     bool    `json:"visible"`
	Active      bool    `json:"status"` // false while price is zero
}
