package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "cart:session:"

// Sessions persists the local cart mirror of each browser session.
type Sessions interface {
	Load(ctx context.Context, sessionID string) ([]Item, error)
	Save(ctx context.Context, sessionID string, items []Item) error
	// Claim reports true the first time token is claimed for the session.
	Claim(ctx context.Context, sessionID, token string) (bool, error)
}

type SessionStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSessionStore(rdb redis.Cmdable, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Load returns nil items for an unknown or expired session.
func (s *SessionStore) Load(ctx context.Context, sessionID string) ([]Item, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadSession, err)
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadSession, err)
	}
	return items, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveSession, err)
	}

	if err := s.rdb.Set(ctx, sessionKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveSession, err)
	}
	return nil
}

func (s *SessionStore) Claim(ctx context.Context, sessionID, token string) (bool, error) {
	claimed, err := s.rdb.SetNX(ctx, sessionKey(sessionID)+":claim:"+token, 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFailedSaveSession, err)
	}
	return claimed, nil
}
