package wholesale

import (
	"context"
	"errors"
	"fmt"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const Path = "/api/wholesale"

var ErrInvalidApplication = errors.New("invalid wholesale application")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// submission is what the backend receives; new applications always start pending.
type submission struct {
	ApplyInput
	Status Status `json:"status"`
}

type Service struct {
	api Poster
}

func NewService(api Poster) *Service {
	return &Service{api: api}
}

// Apply submits a new application in the pending state.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (*Application, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidApplication, err)
	}

	var resp apiclient.Envelope[Application]
	if err := s.api.Post(ctx, Path, submission{ApplyInput: in, Status: StatusPending}, &resp); err != nil {
		logger.FromCtx(ctx).Error("failed to submit wholesale application",
			zap.String("layer", "service"),
			zap.String("service", "wholesale"),
			zap.Error(err),
		)
		return nil, err
	}
	return &resp.Data, nil
}
