package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	"github.com/iho/goloan/internal/usecase"
)

// newIdempotencyFixture starts an in-memory Redis and a store bound to it.
// Both are closed when the test ends; tests that need Redis gone close mr
// themselves.
func newIdempotencyFixture(t *testing.T) (*IdempotencyStore, *redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewIdempotencyStore(client), client, mr
}

func TestIdempotencyStore_CheckAndSetExisting(t *testing.T) {
	store, client, _ := newIdempotencyFixture(t)
	ctx := context.Background()

	if err := client.Set(ctx, store.prefix+"key", "cached", time.Minute).Err(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	exists, resp, err := store.CheckAndSet(ctx, "key", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}

	if !exists || string(resp) != "cached" {
		t.Fatalf("expected existing cached response, got exists=%v resp=%s", exists, resp)
	}
}

func TestIdempotencyStore_CheckAndSetClaimsNewKey(t *testing.T) {
	store, client, _ := newIdempotencyFixture(t)
	ctx := context.Background()

	exists, resp, err := store.CheckAndSet(ctx, "pending", nil, time.Minute)
	if err != nil || exists || resp != nil {
		t.Fatalf("unexpected result: exists=%v resp=%v err=%v", exists, resp, err)
	}

	val, err := client.Get(ctx, store.prefix+"pending").Result()
	if err != nil || val != usecase.IdempotencyPending {
		t.Fatalf("expected pending marker, got val=%s err=%v", val, err)
	}

	exists, resp, err = store.CheckAndSet(ctx, "pending", nil, time.Minute)
	if err != nil || !exists || string(resp) != usecase.IdempotencyPending {
		t.Fatalf("expected second caller to see the pending marker, got exists=%v resp=%s err=%v", exists, resp, err)
	}
}

func TestIdempotencyStore_KeyExpires(t *testing.T) {
	store, _, mr := newIdempotencyFixture(t)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "short", []byte("body"), time.Second); err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	exists, _, err := store.CheckAndSet(ctx, "short", nil, time.Second)
	if err != nil || exists {
		t.Fatalf("expected expired key to be claimable, got exists=%v err=%v", exists, err)
	}
}

func TestIdempotencyStore_Update(t *testing.T) {
	store, client, mr := newIdempotencyFixture(t)
	ctx := context.Background()

	if err := store.Update(ctx, "complete", []byte("done"), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	val, err := client.Get(ctx, store.prefix+"complete").Result()
	if err != nil || val != "done" {
		t.Fatalf("expected stored response, got val=%s err=%v", val, err)
	}

	if ttl := mr.TTL(store.prefix + "complete"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %v", ttl)
	}
}

func TestIdempotencyStore_ClaimCompleteReplay(t *testing.T) {
	store, _, _ := newIdempotencyFixture(t)
	ctx := context.Background()
	key := "/api/v1/schedules/:key-1"

	if exists, _, err := store.CheckAndSet(ctx, key, nil, time.Minute); err != nil || exists {
		t.Fatalf("expected first request to claim the key, got exists=%v err=%v", exists, err)
	}

	stored := []byte(`{"status":201,"body":"e30="}`)
	if err := store.Update(ctx, key, stored, time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, resp, err := store.CheckAndSet(ctx, key, nil, time.Minute)
	if err != nil || !exists || string(resp) != string(stored) {
		t.Fatalf("expected completed response on retry, got exists=%v resp=%s err=%v", exists, resp, err)
	}
}

func TestIdempotencyStore_StoreErrors(t *testing.T) {
	store, _, mr := newIdempotencyFixture(t)
	mr.Close()

	if _, _, err := store.CheckAndSet(context.Background(), "down", nil, time.Minute); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
}

func TestIdempotencyStore_Release(t *testing.T) {
	store, _, _ := newIdempotencyFixture(t)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "retry", nil, time.Minute); err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}
	if err := store.Release(ctx, "retry"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	exists, _, err := store.CheckAndSet(ctx, "retry", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("expected released key to be claimable, got exists=%v err=%v", exists, err)
	}
}
