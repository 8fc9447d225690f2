package model

// RefundStatus is the decision state of a refund request.
type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

// ParseRefundDecision accepts only the two manager decisions.
func ParseRefundDecision(s string) (RefundStatus, bool) {
	switch RefundStatus(s) {
	case RefundApproved, RefundRejected:
		return RefundStatus(s), true
	}
	return "", false
}

// Refund represents an entry in the refunds table. One row per
// (product, order) pair; rows are never deleted.
type Refund struct {
	RefundID  int64        `json:"refund_id"`
	OrderID   int64        `json:"order_id"`
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Status    RefundStatus `json:"status"`
	Amount    float64      `json:"amount"`
}
