package cart

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"maison-storefront/internal/logger"

	"go.uber.org/zap"
)

// Service mirrors every cart mutation locally first, then on the backend.
// A successful backend call replaces the local state with the server's cart.
// A failed one leaves the optimistic state in place and returns the local
// items together with an ErrFailedSyncCart error; Reload reconciles it.
type Service interface {
	Items(ctx context.Context, sessionID string) ([]Item, error)
	Reload(ctx context.Context, sessionID string) ([]Item, error)
	AddItem(ctx context.Context, sessionID string, item Item) ([]Item, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error)
	RemoveItem(ctx context.Context, sessionID, productID string) ([]Item, error)
	Clear(ctx context.Context, sessionID string) error
	// ClearOnce clears the cart only the first time it is called with token.
	ClearOnce(ctx context.Context, sessionID, token string) (bool, error)
}

// lockStripes bounds the per-session locks; sessions sharing a stripe
// serialize with each other.
const lockStripes = 64

type service struct {
	repo     Repository
	sessions Sessions
	locks    [lockStripes]sync.Mutex
}

func NewService(repo Repository, sessions Sessions) Service {
	return &service{repo: repo, sessions: sessions}
}

func (s *service) Items(ctx context.Context, sessionID string) ([]Item, error) {
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	unlock := s.lock(sessionID)
	defer unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.Items(), nil
}

func (s *service) Reload(ctx context.Context, sessionID string) ([]Item, error) {
	log := s.log(ctx, "Reload", sessionID)

	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	unlock := s.lock(sessionID)
	defer unlock()

	remote, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to fetch cart from backend", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedSyncCart, err)
	}

	store := NewStore(remote)
	s.save(ctx, sessionID, store)
	return store.Items(), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, item Item) ([]Item, error) {
	return s.mutate(ctx, "AddItem", sessionID, AddItem(item), func(ctx context.Context) ([]Item, error) {
		return s.repo.Add(ctx, sessionID, item.ProductID, item.Quantity)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) ([]Item, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if err := checkSession(sessionID); err != nil {
		return nil, err
	}

	unlock := s.lock(sessionID)
	store, err := s.load(ctx, sessionID)
	unlock()
	if err != nil {
		return nil, err
	}

	// unchanged quantity is a no-op
	if current, ok := store.Find(productID); ok && current.Quantity == quantity {
		return store.Items(), nil
	}

	return s.mutate(ctx, "UpdateQuantity", sessionID, UpdateQuantity(productID, quantity), func(ctx context.Context) ([]Item, error) {
		return s.repo.SetQuantity(ctx, sessionID, productID, quantity)
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) ([]Item, error) {
	return s.mutate(ctx, "RemoveItem", sessionID, RemoveItem(productID), func(ctx context.Context) ([]Item, error) {
		return s.repo.SetQuantity(ctx, sessionID, productID, 0)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, "Clear", sessionID, ClearCart(), func(ctx context.Context) ([]Item, error) {
		if err := s.repo.Clear(ctx, sessionID); err != nil {
			return nil, err
		}
		return []Item{}, nil
	})
	return err
}

func (s *service) ClearOnce(ctx context.Context, sessionID, token string) (bool, error) {
	if err := checkSession(sessionID); err != nil {
		return false, err
	}
	if strings.TrimSpace(token) == "" {
		return false, ErrMissingClearToken
	}

	claimed, err := s.sessions.Claim(ctx, sessionID, token)
	if err != nil {
		s.log(ctx, "ClearOnce", sessionID).Error("failed to claim cart clear", zap.Error(err))
		return false, err
	}
	if !claimed {
		return false, nil
	}
	return true, s.Clear(ctx, sessionID)
}

func (s *service) mutate(
	ctx context.Context,
	method, sessionID string,
	action Action,
	remote func(ctx context.Context) ([]Item, error),
) ([]Item, error) {
	log := s.log(ctx, method, sessionID)

	if err := checkSession(sessionID); err != nil {
		return nil, err
	}
	unlock := s.lock(sessionID)
	defer unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 1. optimistic local update
	if err := store.Dispatch(action); err != nil {
		log.Warn("rejected cart action", zap.String("action", string(action.Type)), zap.Error(err))
		return nil, err
	}
	s.save(ctx, sessionID, store)

	// 2. backend
	serverItems, err := remote(ctx)
	if err != nil {
		log.Error("backend cart call failed, keeping local state", zap.Error(err))
		return store.Items(), fmt.Errorf("%w: %v", ErrFailedSyncCart, err)
	}

	// 3. reconcile from the server response
	_ = store.Dispatch(ReplaceAll(serverItems))
	s.save(ctx, sessionID, store)

	log.Info("cart updated", zap.Int("lines", len(serverItems)), zap.Int("units", store.Count()))
	return store.Items(), nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Store, error) {
	items, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		s.log(ctx, "load", sessionID).Error("failed to load cart session", zap.Error(err))
		return nil, err
	}
	return NewStore(items), nil
}

func (s *service) save(ctx context.Context, sessionID string, store *Store) {
	if err := s.sessions.Save(ctx, sessionID, store.Items()); err != nil {
		s.log(ctx, "save", sessionID).Warn("failed to save cart session", zap.Error(err))
	}
}

func (s *service) lock(sessionID string) func() {
	mu := &s.locks[stripe(sessionID)]
	mu.Lock()
	return mu.Unlock
}

func stripe(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % lockStripes)
}

func (s *service) log(ctx context.Context, method, sessionID string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "cart"),
		zap.String("method", method),
		zap.String("session_id", sessionID),
	)
}

func checkSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrMissingSession
	}
	return nil
}
