package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a narrow TTL-bound key-value view over a shared Redis instance.
// Every call goes to Redis directly so that multiple service instances
// observe the same state; expiry is handled by Redis itself.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a Store backed by the provided Redis client.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

// Get returns the value stored under key. The second return value reports
// whether the key was present; an expired key is simply absent.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s.client == nil {
		return "", false, fmt.Errorf("redis client not initialized")
	}

	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, true, nil
}

// SetWithTTL stores value under key, replacing any existing value and
// restarting the expiry window.
func (s *Store) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}
