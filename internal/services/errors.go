package services

import "errors"

// Business-rule sentinels. Endpoints match on these to pick status
// codes; anything else is treated as an infrastructure failure.
var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrOrderNotFound           = errors.New("order not found")
	ErrUnauthorized            = errors.New("order does not belong to this user")
	ErrAlreadyDelivered        = errors.New("order already delivered, cannot be cancelled")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("order status transition not allowed")

	ErrRefundNotEligible        = errors.New("refund is only available for delivered orders")
	ErrRefundPeriodExpired      = errors.New("refund period (30 days) has expired")
	ErrInvalidProductOrQuantity = errors.New("invalid product or quantity")
	ErrDuplicateRefundRequest   = errors.New("a refund request for this product in this order already exists")
	ErrRefundNotFound           = errors.New("refund request not found")
	ErrRefundAlreadyDecided     = errors.New("refund request already decided")
	ErrInvalidDecision          = errors.New("invalid refund decision")
)
