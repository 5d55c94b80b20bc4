package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-marketplace-be/pkg/chatflow"
)

const keyPrefix = "chat:"

// RedisStore keeps sessions in Redis so the flow survives process restarts
// and scales across instances.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ IStore = &RedisStore{}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionId string) (*chatflow.Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+sessionId).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session chatflow.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *chatflow.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, keyPrefix+session.SessionId, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionId string) error {
	if err := s.rdb.Del(ctx, keyPrefix+sessionId).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
