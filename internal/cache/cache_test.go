package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNilCacheIsAMiss(t *testing.T) {
	ctx := context.Background()
	var c *Cache

	var dest []string
	hit, err := c.Get(ctx, "anything", &dest)
	if err != nil || hit {
		t.Fatalf("nil cache Get: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "anything", []string{"x"}); err != nil {
		t.Fatalf("nil cache Set: %v", err)
	}
	if err := c.Delete(ctx, "anything"); err != nil {
		t.Fatalf("nil cache Delete: %v", err)
	}
}

func setupCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis integration tests")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, ttl)
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t, time.Minute)

	type payload struct {
		Title string  `json:"title"`
		Price float64 `json:"price"`
	}
	key := "cache_test:listing"
	defer func() { _ = c.Delete(ctx, key) }()

	var got payload
	hit, err := c.Get(ctx, key, &got)
	if err != nil || hit {
		t.Fatalf("expected a miss before Set: hit=%v err=%v", hit, err)
	}

	want := payload{Title: "Bike", Price: 120}
	if err := c.Set(ctx, key, want); err != nil {
		t.Fatalf("set: %v", err)
	}

	hit, err = c.Get(ctx, key, &got)
	if err != nil || !hit {
		t.Fatalf("expected a hit after Set: hit=%v err=%v", hit, err)
	}
	if got != want {
		t.Fatalf("round trip: got %+v, want %+v", got, want)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	hit, _ = c.Get(ctx, key, &got)
	if hit {
		t.Fatalf("expected a miss after Delete")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t, 100*time.Millisecond)

	key := "cache_test:expiry"
	if err := c.Set(ctx, key, "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	var got string
	hit, err := c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatalf("expected the key to expire")
	}
}
