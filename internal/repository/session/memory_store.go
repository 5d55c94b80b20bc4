package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"

	"loan-marketplace-be/pkg/chatflow"
)

// MemoryStore is the single-process fallback used when Redis is not
// configured. Expired sessions are purged every 10 minutes.
//
// Sessions are held serialized so the value a caller gets back is its own
// copy; mutations made without a Save never reach the store.
type MemoryStore struct {
	cache *cache.Cache
}

var _ IStore = &MemoryStore{}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionId string) (*chatflow.Session, error) {
	x, found := s.cache.Get(sessionId)
	if !found {
		return nil, ErrNotFound
	}

	var session chatflow.Session
	if err := json.Unmarshal(x.([]byte), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemoryStore) Save(ctx context.Context, session *chatflow.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.cache.Set(session.SessionId, data, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionId string) error {
	s.cache.Delete(sessionId)
	return nil
}
