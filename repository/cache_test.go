package repository

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMockCache_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	cache := NewMockCache()
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Set(ctx, "forever", "v", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if v, ok := cache.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get(k) = %q, %v; want v, true", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get(ctx, "k"); ok {
		t.Error("expected expired entry to be gone")
	}
	if _, ok := cache.Get(ctx, "forever"); !ok {
		t.Error("entry without ttl should not expire")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("plan", "1", "2")
	b := CacheKey("plan", "1", "2")
	c := CacheKey("plan", "12")

	if a != b {
		t.Errorf("CacheKey not deterministic: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("CacheKey should separate parts: %q == %q", a, c)
	}
	if a[:5] != "plan:" {
		t.Errorf("CacheKey(%q) missing namespace", a)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	cache := NewRedisCache(addr, "housing-credit-test:")
	defer cache.Close()

	if err := cache.Ping(ctx); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := cache.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	if _, ok := cache.Get(ctx, "missing"); ok {
		t.Error("expected miss")
	}
}
