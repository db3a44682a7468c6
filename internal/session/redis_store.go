package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/schoolcrm-backend/internal/config"
)

// RedisStore keeps sessions in Redis; expiry is enforced by the key TTL.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a session store over an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Identity, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if identity.Expired(time.Now()) {
		return nil, ErrNoSession
	}
	return &identity, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, identity Identity, ttl time.Duration) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.SessionKey(id), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, config.CacheKey.SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
