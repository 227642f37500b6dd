package order

import (
	"context"
	"fmt"
	"strings"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, in CreateInput) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error)
	ListMine(ctx context.Context, page, limit int) (*Page, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create never retries; a failed create surfaces ErrFailedCreateOrder.
func (s *service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	log := s.log(ctx, "Create")

	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !in.Total.Equal(in.Subtotal.Add(in.Shipping).Add(in.Tax)) {
		return nil, ErrTotalMismatch
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = PaymentPending
	}

	o, err := s.repo.Create(ctx, in)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
	}

	log.Info("order created", zap.String("order_id", o.ID), zap.String("total", o.Total.String()))
	return o, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingOrderID
	}

	o, err := s.repo.Get(ctx, id)
	if apiclient.IsNotFound(err) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		s.log(ctx, "Get").Error("failed to get order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.update(ctx, "UpdateStatus", id, Update{Status: &status})
}

func (s *service) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}
	return s.update(ctx, "UpdatePaymentStatus", id, Update{PaymentStatus: &status})
}

func (s *service) ListMine(ctx context.Context, page, limit int) (*Page, error) {
	p, err := s.repo.ListMine(ctx, page, limit)
	if err != nil {
		s.log(ctx, "ListMine").Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) update(ctx context.Context, method, id string, in Update) (*Order, error) {
	log := s.log(ctx, method).With(zap.String("order_id", id))

	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingOrderID
	}

	o, err := s.repo.Update(ctx, id, in)
	if apiclient.IsNotFound(err) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to update order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedUpdateOrder, err)
	}

	log.Info("order updated")
	return o, nil
}

func (s *service) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "order"),
		zap.String("method", method),
	)
}
