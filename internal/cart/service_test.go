package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, sessionID string) ([]Item, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockRepository) Add(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockRepository) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockRepository) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// memorySessions keeps sessions in a map.
type memorySessions struct {
	mu     sync.Mutex
	data   map[string][]Item
	claims map[string]bool
}

func newMemorySessions(seed map[string][]Item) *memorySessions {
	if seed == nil {
		seed = map[string][]Item{}
	}
	return &memorySessions{data: seed}
}

func (m *memorySessions) Load(_ context.Context, id string) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.data[id]...), nil
}

func (m *memorySessions) Save(_ context.Context, id string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[id] = append([]Item(nil), items...)
	return nil
}

func (m *memorySessions) Claim(_ context.Context, id, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claims == nil {
		m.claims = map[string]bool{}
	}
	key := id + ":" + token
	if m.claims[key] {
		return false, nil
	}
	m.claims[key] = true
	return true, nil
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Reconciles from server", func(t *testing.T) {
		repo := new(MockRepository)
		sessions := newMemorySessions(nil)
		svc := NewService(repo, sessions)

		server := []Item{vase(1), lamp(3)}
		repo.On("Add", ctx, "sess-1", "p-vase", 1).Return(server, nil)

		items, err := svc.AddItem(ctx, "sess-1", vase(1))
		require.NoError(t, err)
		assert.Len(t, items, 2)

		stored, _ := sessions.Load(ctx, "sess-1")
		assert.Len(t, stored, 2)
		repo.AssertExpectations(t)
	})

	t.Run("Backend failure keeps optimistic state", func(t *testing.T) {
		repo := new(MockRepository)
		sessions := newMemorySessions(nil)
		svc := NewService(repo, sessions)

		repo.On("Add", ctx, "sess-1", "p-vase", 2).Return(nil, errors.New("boom"))

		items, err := svc.AddItem(ctx, "sess-1", vase(2))
		assert.ErrorIs(t, err, ErrFailedSyncCart)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)

		stored, _ := sessions.Load(ctx, "sess-1")
		assert.Len(t, stored, 1)
	})

	t.Run("Invalid item never reaches backend", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, newMemorySessions(nil))

		_, err := svc.AddItem(ctx, "sess-1", vase(0))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing session", func(t *testing.T) {
		svc := NewService(new(MockRepository), newMemorySessions(nil))
		_, err := svc.AddItem(ctx, " ", vase(1))
		assert.ErrorIs(t, err, ErrMissingSession)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Unchanged quantity is a no-op", func(t *testing.T) {
		repo := new(MockRepository)
		sessions := newMemorySessions(map[string][]Item{"sess-1": {vase(2), lamp(1)}})
		svc := NewService(repo, sessions)

		items, err := svc.UpdateQuantity(ctx, "sess-1", "p-vase", 2)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, 3, NewStore(items).Count())
		repo.AssertNotCalled(t, "SetQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Zero removes the line", func(t *testing.T) {
		repo := new(MockRepository)
		sessions := newMemorySessions(map[string][]Item{"sess-1": {vase(2), lamp(1)}})
		svc := NewService(repo, sessions)

		repo.On("SetQuantity", ctx, "sess-1", "p-vase", 0).Return([]Item{lamp(1)}, nil)

		items, err := svc.UpdateQuantity(ctx, "sess-1", "p-vase", 0)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "p-lamp", items[0].ProductID)
		repo.AssertExpectations(t)
	})

	t.Run("Negative rejected", func(t *testing.T) {
		svc := NewService(new(MockRepository), newMemorySessions(nil))
		_, err := svc.UpdateQuantity(ctx, "sess-1", "p-vase", -3)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	sessions := newMemorySessions(map[string][]Item{"sess-1": {vase(2), lamp(1)}})
	svc := NewService(repo, sessions)

	repo.On("SetQuantity", ctx, "sess-1", "p-lamp", 0).Return([]Item{vase(2)}, nil)
	repo.On("Clear", ctx, "sess-1").Return(nil)

	items, err := svc.RemoveItem(ctx, "sess-1", "p-lamp")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.Clear(ctx, "sess-1"))
	items, err = svc.Items(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, items)
	repo.AssertExpectations(t)
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	sessions := newMemorySessions(map[string][]Item{"sess-1": {vase(9)}})
	svc := NewService(repo, sessions)

	repo.On("Get", ctx, "sess-1").Return([]Item{lamp(1)}, nil).Once()

	items, err := svc.Reload(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-lamp", items[0].ProductID)

	repo.On("Get", ctx, "sess-1").Return(nil, errors.New("down")).Once()
	_, err = svc.Reload(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrFailedSyncCart)
}

func TestService_ClearOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("Second call with the same token keeps new items", func(t *testing.T) {
		repo := new(MockRepository)
		sessions := newMemorySessions(map[string][]Item{"sess-1": {vase(2)}})
		svc := NewService(repo, sessions)

		repo.On("Clear", ctx, "sess-1").Return(nil).Once()

		cleared, err := svc.ClearOnce(ctx, "sess-1", "ord-1")
		require.NoError(t, err)
		assert.True(t, cleared)

		// bought again after the first purchase
		require.NoError(t, sessions.Save(ctx, "sess-1", []Item{lamp(1)}))

		cleared, err = svc.ClearOnce(ctx, "sess-1", "ord-1")
		require.NoError(t, err)
		assert.False(t, cleared)

		items, err := svc.Items(ctx, "sess-1")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "p-lamp", items[0].ProductID)
		repo.AssertNumberOfCalls(t, "Clear", 1)
	})

	t.Run("Backend failure still empties the local cart", func(t *testing.T) {
		repo := new(MockRepository)
		sessions := newMemorySessions(map[string][]Item{"sess-1": {vase(2)}})
		svc := NewService(repo, sessions)

		repo.On("Clear", ctx, "sess-1").Return(errors.New("down"))

		cleared, err := svc.ClearOnce(ctx, "sess-1", "ord-1")
		assert.True(t, cleared)
		assert.ErrorIs(t, err, ErrFailedSyncCart)

		stored, _ := sessions.Load(ctx, "sess-1")
		assert.Empty(t, stored)
	})

	t.Run("Token required", func(t *testing.T) {
		svc := NewService(new(MockRepository), newMemorySessions(nil))
		_, err := svc.ClearOnce(ctx, "sess-1", " ")
		assert.ErrorIs(t, err, ErrMissingClearToken)
	})
}

func TestService_LocksStayBounded(t *testing.T) {
	ctx := context.Background()
	svc := NewService(new(MockRepository), newMemorySessions(nil)).(*service)

	used := map[int]bool{}
	var wg sync.WaitGroup
	for i := range 1000 {
		id := fmt.Sprintf("sess-%d", i)
		idx := stripe(id)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, lockStripes)
		assert.Equal(t, idx, stripe(id))
		used[idx] = true

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Items(ctx, id)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, lockStripes, len(svc.locks))
	assert.Greater(t, len(used), 1)
}
