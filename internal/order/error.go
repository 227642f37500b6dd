package order

import "errors"

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrMissingOrderID       = errors.New("order id is required")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrTotalMismatch        = errors.New("order total does not equal subtotal + shipping + tax")
	ErrFailedCreateOrder    = errors.New("failed to create order")
	ErrFailedUpdateOrder    = errors.New("failed to update order")
)
