package payment

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Initialize(ctx context.Context, req InitRequest) (*Initialization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Initialization), args.Error(1)
}

func (m *MockGateway) Verify(ctx context.Context, reference string) (*Verification, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Verification), args.Error(1)
}

func (m *MockGateway) VerifySignature(header http.Header, body []byte) error {
	args := m.Called(header, body)
	return args.Error(0)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveRecord(ctx context.Context, rec *Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRepository) UpdateStatusByReference(ctx context.Context, reference string, status Status) error {
	return m.Called(ctx, reference, status).Error(0)
}

func (m *MockRepository) GetByReference(ctx context.Context, reference string) (*Record, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockRepository) SaveWebhook(ctx context.Context, w Webhook) (int64, bool, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockRepository) MarkWebhookProcessed(ctx context.Context, webhookID int64) error {
	return m.Called(ctx, webhookID).Error(0)
}

func (m *MockRepository) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	return m.Called(ctx, webhookID, reason).Error(0)
}
