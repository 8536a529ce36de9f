package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStoreForTest(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return m, NewStore(client)
}

func TestStore_SetGetDelete(t *testing.T) {
	_, store := newStoreForTest(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if ok {
		t.Errorf("Get() missing key should not be present")
	}

	if err := store.SetWithTTL(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("SetWithTTL() unexpected error: %v", err)
	}

	val, ok, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if !ok || val != "v" {
		t.Errorf("Get() = (%q, %v), want (\"v\", true)", val, ok)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Errorf("Get() after delete should not find the key")
	}

	// Deleting again is fine
	if err := store.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() on missing key should succeed: %v", err)
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	m, store := newStoreForTest(t)
	ctx := context.Background()

	if err := store.SetWithTTL(ctx, "k", "v", 30*time.Second); err != nil {
		t.Fatalf("SetWithTTL() unexpected error: %v", err)
	}

	m.FastForward(31 * time.Second)

	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Errorf("Get() after TTL should not find the key")
	}
}

func TestStore_NilClient(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	if _, _, err := store.Get(ctx, "k"); err == nil {
		t.Errorf("Get() expected error with nil client")
	}
	if err := store.SetWithTTL(ctx, "k", "v", time.Minute); err == nil {
		t.Errorf("SetWithTTL() expected error with nil client")
	}
	if err := store.Delete(ctx, "k"); err == nil {
		t.Errorf("Delete() expected error with nil client")
	}
}
