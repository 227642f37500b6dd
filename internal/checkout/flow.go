package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"maison-storefront/internal/auth"
	"maison-storefront/internal/cart"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/order"
	"maison-storefront/internal/payment"
	"maison-storefront/internal/pricing"

	"go.uber.org/zap"
)

// ClearPolicy decides when a checked-out cart is emptied.
type ClearPolicy string

const (
	ClearOnInitialized ClearPolicy = "initialized"
	ClearOnConfirmed   ClearPolicy = "confirmed"
)

func ParseClearPolicy(s string) (ClearPolicy, error) {
	switch ClearPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ClearOnInitialized:
		return ClearOnInitialized, nil
	case ClearOnConfirmed:
		return ClearOnConfirmed, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

type OrderCreator interface {
	Create(ctx context.Context, in order.CreateInput) (*order.Order, error)
}

type PaymentInitializer interface {
	Initialize(ctx context.Context, in payment.InitInput) (*payment.Initialization, error)
}

type Quote struct {
	Lines []order.Item  `json:"lines"`
	Quote pricing.Quote `json:"quote"`
}

type Result struct {
	Order            *order.Order  `json:"order"`
	AuthorizationURL string        `json:"authorizationUrl"`
	Reference        string        `json:"reference"`
	Quote            pricing.Quote `json:"quote"`
	CartClear
}

// CartClear reports the cart as the buyer sees it. CartSyncFailed means the
// session cart was emptied but the backend still holds the lines.
type CartClear struct {
	CartCleared    bool `json:"cartCleared"`
	CartSyncFailed bool `json:"cartSyncFailed,omitempty"`
}

func clearOutcome(err error) CartClear {
	switch {
	case err == nil:
		return CartClear{CartCleared: true}
	case errors.Is(err, cart.ErrFailedSyncCart):
		return CartClear{CartCleared: true, CartSyncFailed: true}
	}
	return CartClear{}
}

// Flow runs both the cart checkout and buy-now through the same steps.
type Flow struct {
	orders   OrderCreator
	payments PaymentInitializer
	policy   pricing.Policy
	clear    ClearPolicy
}

func NewFlow(orders OrderCreator, payments PaymentInitializer, policy pricing.Policy, clear ClearPolicy) *Flow {
	if clear == "" {
		clear = ClearOnInitialized
	}
	return &Flow{orders: orders, payments: payments, policy: policy, clear: clear}
}

func (f *Flow) ClearPolicy() ClearPolicy {
	return f.clear
}

func (f *Flow) Quote(ctx context.Context, src Source) (*Quote, error) {
	lines, err := src.Lines(ctx)
	if err != nil {
		return nil, err
	}
	return &Quote{Lines: lines, Quote: f.policy.Quote(pricingLines(lines))}, nil
}

// Submit creates the order, then initializes payment for it. A failed order
// creation stops before payment; a failed payment leaves the order in place.
func (f *Flow) Submit(ctx context.Context, src Source, form Form) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "checkout"),
		zap.String("source", src.Name()),
	)

	// 1. presence validation, no request on failure
	for _, step := range []Step{StepContact, StepShipping} {
		if err := form.Validate(step); err != nil {
			log.Info("checkout form incomplete", zap.Error(err))
			return nil, err
		}
	}

	// 2. lines and pricing
	lines, err := src.Lines(ctx)
	if err != nil {
		log.Warn("failed to load checkout lines", zap.Error(err))
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	quote := f.policy.Quote(pricingLines(lines))

	// 3. order
	userID, _ := auth.UserIDFrom(ctx)
	o, err := f.orders.Create(ctx, order.CreateInput{
		UserID:          userID,
		Items:           lines,
		ShippingAddress: form.ShippingAddress(),
		Subtotal:        quote.Subtotal,
		Shipping:        quote.Shipping,
		Tax:             quote.Tax,
		Total:           quote.Total,
		Status:          order.StatusPending,
		PaymentStatus:   order.PaymentPending,
		Notes:           strings.TrimSpace(form.Notes),
	})
	if err != nil {
		log.Error("order creation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderCreate, err)
	}
	log = log.With(zap.String("order_id", o.ID))

	// 4. payment
	pay, err := f.payments.Initialize(ctx, payment.InitInput{
		OrderID: o.ID,
		Amount:  quote.Total,
		Email:   strings.TrimSpace(form.Email),
		Source:  src.Name(),
	})
	if err != nil {
		log.Error("payment initialization failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}

	res := &Result{
		Order:            o,
		AuthorizationURL: pay.AuthorizationURL,
		Reference:        pay.Reference,
		Quote:            quote,
	}

	// 5. cart clearing
	if c, ok := src.(*CartSource); ok && f.clear == ClearOnInitialized {
		err := c.clearCart(ctx)
		if err != nil {
			log.Warn("failed to clear cart after payment initialization", zap.Error(err))
		}
		res.CartClear = clearOutcome(err)
	}

	log.Info("checkout submitted", zap.String("reference", pay.Reference))
	return res, nil
}

// AfterConfirmation empties a checked-out cart once payment is verified,
// when the flow defers clearing to confirmation. Each payment reference
// clears the cart at most once, so reloading the page keeps later items.
func (f *Flow) AfterConfirmation(ctx context.Context, carts CartClearer, sessionID, source string, view *order.ConfirmationView) CartClear {
	if f.clear != ClearOnConfirmed || source != SourceCart || sessionID == "" || view == nil || !view.Confirmed() {
		return CartClear{}
	}

	claimed, err := carts.ClearOnce(ctx, sessionID, view.Payment.Reference)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to clear cart after confirmation",
			zap.String("reference", view.Payment.Reference), zap.Error(err))
	}
	if !claimed {
		return CartClear{}
	}
	return clearOutcome(err)
}

func pricingLines(items []order.Item) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Line{Price: it.Price, Quantity: it.Quantity})
	}
	return lines
}
