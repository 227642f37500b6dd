package checkout

import (
	"context"

	"maison-storefront/internal/cart"
	"maison-storefront/internal/catalog"
	"maison-storefront/internal/order"
	"maison-storefront/internal/payment"

	"github.com/stretchr/testify/mock"
)

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) Create(ctx context.Context, in order.CreateInput) (*order.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) Initialize(ctx context.Context, in payment.InitInput) (*payment.Initialization, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Initialization), args.Error(1)
}

type MockCarts struct {
	mock.Mock
}

func (m *MockCarts) Items(ctx context.Context, sessionID string) ([]cart.Item, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Item), args.Error(1)
}

func (m *MockCarts) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockCarts) ClearOnce(ctx context.Context, sessionID, token string) (bool, error) {
	args := m.Called(ctx, sessionID, token)
	return args.Bool(0), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}
