package checkout

import (
	"errors"

	"maison-storefront/internal/catalog"
	"maison-storefront/internal/notice"
)

var (
	ErrIncompleteStep  = errors.New("checkout step is incomplete")
	ErrInvalidStep     = errors.New("invalid checkout step")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidPolicy   = errors.New("invalid cart clearing policy")

	ErrOrderCreate = errors.New("order creation failed")
	ErrPaymentInit = errors.New("payment initialization failed")
)

// NoticeFor maps a checkout failure to the single notice shown to the buyer.
func NoticeFor(err error) *notice.Notice {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrIncompleteStep):
		return notice.Error("Missing information", "Please fill in all required fields.")
	case errors.Is(err, ErrEmptyCart):
		return notice.Error("Your cart is empty", "Add something to your cart before checking out.")
	case errors.Is(err, ErrInvalidQuantity):
		return notice.Error("Invalid quantity", "Please choose at least one item.")
	case errors.Is(err, ErrOutOfStock):
		return notice.Error("Out of stock", "This product is currently unavailable.")
	case errors.Is(err, catalog.ErrProductNotFound):
		return notice.Error("Product not found", "This product is no longer available.")
	case errors.Is(err, ErrOrderCreate):
		return notice.Error("Order failed", "We could not place your order. Please try again.")
	case errors.Is(err, ErrPaymentInit):
		return notice.Error("Payment failed", "Your order was saved but the payment could not be started. Please try again.")
	}
	return notice.Error("Something went wrong", "Please try again.")
}
