package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"maison-storefront/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InitInput struct {
	OrderID string
	Amount  decimal.Decimal
	Email   string

	// Source is echoed back on the callback URL, e.g. "cart".
	Source string
}

type Service interface {
	Initialize(ctx context.Context, in InitInput) (*Initialization, error)
	Verify(ctx context.Context, reference string) (*Verification, error)
}

type service struct {
	gateway     Gateway
	repo        Repository
	callbackURL string
	now         func() time.Time
}

// NewService builds the payment initializer. repo may be nil, which turns
// the ledger off.
func NewService(gateway Gateway, repo Repository, publicBaseURL string) Service {
	return &service{
		gateway:     gateway,
		repo:        repo,
		callbackURL: strings.TrimRight(publicBaseURL, "/") + "/orders/confirmation",
		now:         time.Now,
	}
}

// CallbackURL is where the gateway sends the buyer back to.
func CallbackURL(base, orderID, source string) string {
	q := url.Values{"orderId": {orderID}}
	if source != "" {
		q.Set("source", source)
	}
	return base + "?" + q.Encode()
}

func (s *service) Initialize(ctx context.Context, in InitInput) (*Initialization, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "payment"),
		zap.String("method", "Initialize"),
		zap.String("order_id", in.OrderID),
	)

	switch {
	case strings.TrimSpace(in.OrderID) == "":
		return nil, ErrMissingOrderID
	case strings.TrimSpace(in.Email) == "":
		return nil, ErrMissingEmail
	case !in.Amount.IsPositive():
		return nil, ErrInvalidAmount
	}

	req := InitRequest{
		Amount:      in.Amount,
		Email:       in.Email,
		Reference:   NewReference(in.OrderID, s.now()),
		OrderID:     in.OrderID,
		CallbackURL: CallbackURL(s.callbackURL, in.OrderID, in.Source),
	}

	res, err := s.gateway.Initialize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedInitPayment, err)
	}

	if s.repo != nil {
		rec := &Record{
			OrderID:          in.OrderID,
			Reference:        res.Reference,
			AuthorizationURL: res.AuthorizationURL,
			Amount:           in.Amount,
			Email:            in.Email,
			Status:           StatusInitialized,
		}
		if err := s.repo.SaveRecord(ctx, rec); err != nil {
			log.Warn("failed to write payment ledger", zap.String("reference", res.Reference), zap.Error(err))
		}
	}

	return res, nil
}

// Verify asks the gateway once and mirrors a final status into the ledger.
func (s *service) Verify(ctx context.Context, reference string) (*Verification, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "payment"),
		zap.String("method", "Verify"),
		zap.String("reference", reference),
	)

	if strings.TrimSpace(reference) == "" {
		return nil, ErrMissingReference
	}

	v, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedVerifyPayment, err)
	}

	if s.repo != nil && v.Status.Final() {
		if err := s.repo.UpdateStatusByReference(ctx, reference, v.Status); err != nil {
			log.Warn("failed to update payment ledger", zap.Error(err))
		}
	}

	return v, nil
}
