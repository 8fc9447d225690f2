package model

// CartLine represents a row in the cart_items table
type CartLine struct {
	CartID    int64 `json:"cart_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartItem is what the API exposes (joined with products)
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Picture   *string `json:"picture,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // discount already applied
	Subtotal  float64 `json:"subtotal"`
}

// CartResponse is returned when calling GET /cart
type CartResponse struct {
	CartID int64      `json:"cart_id"`
	Items  []CartItem `json:"items"`
	Total  float64    `json:"total"`
}
