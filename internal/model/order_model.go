package model

import "time"

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusInTransit  OrderStatus = "in-transit"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusProcessing, StatusInTransit, StatusDelivered, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether an order may move from its current
// status to target. Delivered and cancelled are terminal: a cancelled
// order cannot be resurrected, even by a manager.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s == StatusDelivered || s == StatusCancelled {
		return false
	}
	return s != target
}

// Order represents an entry in the orders table
type Order struct {
	OrderID    int64       `json:"order_id"`
	UserID     int64       `json:"user_id"`
	Status     OrderStatus `json:"order_status"`
	Items      []OrderItem `json:"product_list"`
	TotalPrice float64     `json:"total_price"`
	Address    string      `json:"address"`
	Date       time.Time   `json:"date"`
	InvoicePDF string      `json:"-"` // base64, never JSON-encode inline
}

// OrderItem is a frozen snapshot of one cart line at checkout time.
// Name and unit price are copied from the product, not referenced live.
type OrderItem struct {
	OrderItemID int64   `json:"order_item_id,omitempty"`
	OrderID     int64   `json:"order_id,omitempty"`
	ProductID   int64   `json:"p_id"`
	Name        string  `json:"name"`
	Image       string  `json:"image,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// OrderSummary is returned from POST /orders/checkout.
type OrderSummary struct {
	OrderID    int64       `json:"order_id"`
	Reference  string      `json:"order_reference"`
	Status     OrderStatus `json:"status"`
	TotalPrice float64     `json:"total_price"`
	Items      []OrderItem `json:"products"`
}
