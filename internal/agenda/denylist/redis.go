package denylist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "agenda:denylist:"

// RedisStore implements Store on top of Redis, letting key expiry do the
// cleanup: entries vanish exactly when the token itself stops verifying.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Revoke(ctx context.Context, digest string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	// Plain SET keeps revocation idempotent; revoking twice just refreshes
	// the value with the shorter remaining ttl.
	if err := s.client.Set(ctx, keyPrefix+digest, "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, digest string) (bool, error) {
	err := s.client.Get(ctx, keyPrefix+digest).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("denylist lookup: %w", err)
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("denylist ping: %w", err)
	}
	return nil
}
