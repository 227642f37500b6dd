package payment

import "errors"

var (
	ErrMissingOrderID      = errors.New("payment order id is required")
	ErrMissingEmail        = errors.New("payment email is required")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrMissingReference    = errors.New("payment reference is required")
	ErrInvalidReference    = errors.New("malformed payment reference")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrRecordNotFound      = errors.New("payment record not found")
	ErrFailedInitPayment   = errors.New("failed to initialize payment")
	ErrFailedVerifyPayment = errors.New("failed to verify payment")
)
