package contact

import (
	"context"
	"errors"
	"fmt"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const Path = "/api/contact"

var ErrInvalidMessage = errors.New("invalid contact message")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// submission is what the backend receives; new messages always start unread.
type submission struct {
	SubmitInput
	Status Status `json:"status"`
}

type Service struct {
	api Poster
}

func NewService(api Poster) *Service {
	return &Service{api: api}
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Message, error) {
	if in.Category == "" {
		in.Category = CategoryGeneral
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	var resp apiclient.Envelope[Message]
	if err := s.api.Post(ctx, Path, submission{SubmitInput: in, Status: StatusUnread}, &resp); err != nil {
		logger.FromCtx(ctx).Error("failed to submit contact message",
			zap.String("layer", "service"),
			zap.String("service", "contact"),
			zap.Error(err),
		)
		return nil, err
	}
	return &resp.Data, nil
}
