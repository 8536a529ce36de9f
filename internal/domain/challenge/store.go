package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStorageUnavailable is returned when the shared ephemeral store errors
var ErrStorageUnavailable = errors.New("challenge storage unavailable")

// KeyValue is the narrow contract the store needs from the shared ephemeral
// storage: set with expiry, get, delete. The production implementation is
// Redis; expiry is the storage layer's native TTL, no sweeping happens here.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	keyPrefix = "user:"
	keySuffix = ":challenge"
)

// Store keeps at most one live login challenge per user. Issuing a new one
// replaces the previous value and restarts its TTL window. All state lives
// in the shared store so every service instance sees the same challenge.
type Store struct {
	kv KeyValue
}

// NewStore creates a Store over the provided key-value backend.
func NewStore(kv KeyValue) *Store {
	return &Store{kv: kv}
}

func challengeKey(userID string) string {
	return keyPrefix + userID + keySuffix
}

// Issue stores value as the user's current challenge, overwriting any
// existing one, expiring automatically after ttl.
func (s *Store) Issue(ctx context.Context, userID, value string, ttl time.Duration) error {
	if err := s.kv.SetWithTTL(ctx, challengeKey(userID), value, ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Get returns the live challenge for the user. Absent means never issued,
// already consumed, or expired; the three are indistinguishable on purpose.
func (s *Store) Get(ctx context.Context, userID string) (string, bool, error) {
	value, ok, err := s.kv.Get(ctx, challengeKey(userID))
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return value, ok, nil
}

// Consume deletes the user's challenge. Idempotent; a missing key is fine.
func (s *Store) Consume(ctx context.Context, userID string) error {
	if err := s.kv.Delete(ctx, challengeKey(userID)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
