package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the session record in a single Redis hash so that
// short-lived processes can share one login. Clear removes the whole hash
// in one DEL, which keeps the role-last write ordering meaningful: a reader
// sees either the full record or nothing.
//
// RedisStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RedisStore struct {
	redis redis.UniversalClient
	key   string
}

// NewRedisStore creates a [RedisStore] backed by the given Redis client.
// prefix sets the hash key namespace; the empty prefix defaults to "sf".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sf"
	}
	return &RedisStore{
		redis: client,
		key:   prefix + ":session",
	}
}

// Get returns the stored value for key, or "" when absent.
//
//	Performance: 1 Redis HGET.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.redis.HGet(ctx, s.key, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return v, nil
}

// Set stores value under key.
//
//	Performance: 1 Redis HSET.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.redis.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
//
//	Performance: 1 Redis HDEL.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.redis.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Clear removes the whole session record.
//
//	Performance: 1 Redis DEL.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
