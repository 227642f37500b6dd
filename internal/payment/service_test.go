package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(gw Gateway, repo Repository) *service {
	svc := NewService(gw, repo, "https://shop.example/").(*service)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestService_Initialize(t *testing.T) {
	ctx := context.Background()
	in := InitInput{OrderID: "ord-1", Amount: decimal.NewFromInt(231), Email: "buyer@example.com"}

	t.Run("Builds reference and callback, writes ledger", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockRepository)
		svc := newTestService(gw, repo)

		gw.On("Initialize", ctx, mock.MatchedBy(func(r InitRequest) bool {
			return r.Reference == "ORD-ord-1-1700000000000" &&
				r.CallbackURL == "https://shop.example/orders/confirmation?orderId=ord-1" &&
				r.OrderID == "ord-1" && r.Amount.Equal(decimal.NewFromInt(231))
		})).Return(&Initialization{AuthorizationURL: "https://gw/abc", Reference: "ORD-ord-1-1700000000000"}, nil)

		repo.On("SaveRecord", ctx, mock.MatchedBy(func(rec *Record) bool {
			return rec.Status == StatusInitialized && rec.Reference == "ORD-ord-1-1700000000000"
		})).Return(nil)

		res, err := svc.Initialize(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "https://gw/abc", res.AuthorizationURL)
		gw.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("Ledger failure does not fail initialization", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockRepository)
		svc := newTestService(gw, repo)

		gw.On("Initialize", ctx, mock.Anything).Return(&Initialization{AuthorizationURL: "https://gw/abc"}, nil)
		repo.On("SaveRecord", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Initialize(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("Gateway failure", func(t *testing.T) {
		gw := new(MockGateway)
		svc := newTestService(gw, nil)

		gw.On("Initialize", ctx, mock.Anything).Return(nil, errors.New("502"))

		_, err := svc.Initialize(ctx, in)
		assert.ErrorIs(t, err, ErrFailedInitPayment)
	})

	t.Run("Input validation", func(t *testing.T) {
		gw := new(MockGateway)
		svc := newTestService(gw, nil)

		_, err := svc.Initialize(ctx, InitInput{Amount: decimal.NewFromInt(1), Email: "a@b.c"})
		assert.ErrorIs(t, err, ErrMissingOrderID)
		_, err = svc.Initialize(ctx, InitInput{OrderID: "o", Amount: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, ErrMissingEmail)
		_, err = svc.Initialize(ctx, InitInput{OrderID: "o", Email: "a@b.c"})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		gw.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything)
	})
}

func TestCallbackURL(t *testing.T) {
	base := "https://shop.example/orders/confirmation"
	assert.Equal(t, base+"?orderId=ord-1", CallbackURL(base, "ord-1", ""))
	assert.Equal(t, base+"?orderId=ord-1&source=cart", CallbackURL(base, "ord-1", "cart"))
}

func TestService_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("Final status mirrored into ledger", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockRepository)
		svc := newTestService(gw, repo)

		gw.On("Verify", ctx, "ref-1").Return(&Verification{Status: StatusSuccess, Reference: "ref-1"}, nil)
		repo.On("UpdateStatusByReference", ctx, "ref-1", StatusSuccess).Return(nil)

		v, err := svc.Verify(ctx, "ref-1")
		require.NoError(t, err)
		assert.True(t, v.Succeeded())
		repo.AssertExpectations(t)
	})

	t.Run("Pending status leaves ledger alone", func(t *testing.T) {
		gw := new(MockGateway)
		repo := new(MockRepository)
		svc := newTestService(gw, repo)

		gw.On("Verify", ctx, "ref-1").Return(&Verification{Status: StatusPending}, nil)

		_, err := svc.Verify(ctx, "ref-1")
		require.NoError(t, err)
		repo.AssertNotCalled(t, "UpdateStatusByReference", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Errors", func(t *testing.T) {
		gw := new(MockGateway)
		svc := newTestService(gw, nil)

		_, err := svc.Verify(ctx, " ")
		assert.ErrorIs(t, err, ErrMissingReference)

		gw.On("Verify", ctx, "ref-1").Return(nil, errors.New("timeout"))
		_, err = svc.Verify(ctx, "ref-1")
		assert.ErrorIs(t, err, ErrFailedVerifyPayment)
	})
}
