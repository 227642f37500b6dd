package order

import (
	"context"
	"strings"

	"maison-storefront/internal/logger"
	"maison-storefront/internal/notice"
	"maison-storefront/internal/payment"

	"go.uber.org/zap"
)

type Banner string

const (
	BannerSuccess Banner = "success"
	BannerPending Banner = "pending"
	BannerFailed  Banner = "failed"
)

type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (*payment.Verification, error)
}

// ConfirmationView is the confirmation page model.
type ConfirmationView struct {
	Order     *Order                `json:"order"`
	Reference string                `json:"reference,omitempty"`
	Payment   *payment.Verification `json:"payment,omitempty"`
	Banner    Banner                `json:"banner"`
	Track     []Stage               `json:"track"`
	Notice    *notice.Notice        `json:"notice,omitempty"`
}

// Confirmed reports a verified successful payment.
func (v *ConfirmationView) Confirmed() bool {
	return v.Payment != nil && v.Payment.Succeeded()
}

type Confirmation struct {
	orders   Service
	payments PaymentVerifier
}

func NewConfirmation(orders Service, payments PaymentVerifier) *Confirmation {
	return &Confirmation{orders: orders, payments: payments}
}

// Resolve loads the order and, when the gateway sent a reference back,
// verifies the payment exactly once.
func (c *Confirmation) Resolve(ctx context.Context, orderID, reference string) (*ConfirmationView, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "confirmation"),
		zap.String("order_id", orderID),
		zap.String("reference", reference),
	)

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	o, err := c.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	view := &ConfirmationView{Order: o, Reference: reference}

	reference = strings.TrimSpace(reference)
	if reference == "" {
		view.Banner = bannerFor(o.PaymentStatus)
		view.Track = Track(o.Status)
		return view, nil
	}

	v, err := c.payments.Verify(ctx, reference)
	if err != nil {
		log.Warn("payment verification failed", zap.Error(err))
		view.Banner = BannerPending
		view.Notice = notice.Warning("Payment not verified", "We could not confirm your payment yet. Your order is saved.")
		view.Track = Track(o.Status)
		return view, nil
	}
	view.Payment = v

	switch {
	case v.Succeeded():
		view.Banner = BannerSuccess
		// the webhook may have landed between create and redirect
		if o.PaymentStatus != PaymentPaid {
			if fresh, err := c.orders.Get(ctx, orderID); err == nil {
				view.Order = fresh
			}
		}
	case v.Status == payment.StatusFailed || v.Status == payment.StatusAbandoned:
		view.Banner = BannerFailed
		view.Notice = notice.Error("Payment failed", "Your payment was not completed.")
	default:
		view.Banner = BannerPending
	}

	view.Track = Track(view.Order.Status)
	log.Info("order confirmation resolved", zap.String("banner", string(view.Banner)))
	return view, nil
}

func bannerFor(s PaymentStatus) Banner {
	switch s {
	case PaymentPaid:
		return BannerSuccess
	case PaymentFailed:
		return BannerFailed
	}
	return BannerPending
}
