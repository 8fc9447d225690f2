package model

import "time"

const (
	RoleCustomer       = "customer"
	RoleProductManager = "product_manager"
	RoleSalesManager   = "sales_manager"
)

type User struct {
	UserID       int64      `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	Role         string     `json:"role"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// CustomerInfo holds the profile data the checkout workflow resolves:
// delivery address and legal name, both empty until the customer sets
// them. One row per customer, created at signup next to the cart.
type CustomerInfo struct {
	UserID          int64  `json:"user_id"`
	CartID          int64  `json:"cart_id"`
	Address         string `json:"address"`
	DeliveryAddress string `json:"delivery_address"`
	LegalName       string `json:"legal_name"`
}
