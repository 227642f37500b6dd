package account

import (
	"context"
	"fmt"
	"net/url"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/order"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	profilePath  = "/api/user"
	settingsPath = "/api/user/settings"
)

type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Do(ctx context.Context, req apiclient.Request, out any) error
}

type OrderLister interface {
	ListMine(ctx context.Context, page, limit int) (*order.Page, error)
}

type Service struct {
	api      API
	orders   OrderLister
	validate *validator.Validate
}

func NewService(api API, orders OrderLister) *Service {
	return &Service{
		api:      api,
		orders:   orders,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *Service) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "account"),
		zap.String("method", method),
	)
}

func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	var resp apiclient.Envelope[Profile]
	if err := s.api.Get(ctx, profilePath, nil, &resp); err != nil {
		s.log(ctx, "Profile").Error("failed to load profile", zap.Error(err))
		return nil, err
	}
	return &resp.Data, nil
}

func (s *Service) UpdateProfile(ctx context.Context, in ProfileUpdate) (*Profile, error) {
	if in.Empty() {
		return nil, ErrEmptyUpdate
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	var resp apiclient.Envelope[Profile]
	if err := s.api.Patch(ctx, profilePath, in, &resp); err != nil {
		s.log(ctx, "UpdateProfile").Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	return &resp.Data, nil
}

func (s *Service) Settings(ctx context.Context) (*Settings, error) {
	var resp apiclient.Envelope[Settings]
	if err := s.api.Get(ctx, settingsPath, nil, &resp); err != nil {
		s.log(ctx, "Settings").Error("failed to load settings", zap.Error(err))
		return nil, err
	}
	return &resp.Data, nil
}

func (s *Service) UpdateSettings(ctx context.Context, in SettingsUpdate) (*Settings, error) {
	if in.Empty() {
		return nil, ErrEmptyUpdate
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	var resp apiclient.Envelope[Settings]
	if err := s.api.Patch(ctx, settingsPath, in, &resp); err != nil {
		s.log(ctx, "UpdateSettings").Error("failed to update settings", zap.Error(err))
		return nil, err
	}
	return &resp.Data, nil
}

func (s *Service) Orders(ctx context.Context, page, limit int) (*order.Page, error) {
	if page < 1 || limit < 1 {
		return nil, ErrInvalidPage
	}
	return s.orders.ListMine(ctx, page, limit)
}
