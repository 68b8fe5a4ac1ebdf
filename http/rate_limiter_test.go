package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(t *testing.T, capacity int, length time.Duration, clock *time.Time) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(capacity, length)
	t.Cleanup(rl.Stop)
	rl.now = func() time.Time { return *clock }
	return rl
}

func TestRateLimiter_Allow(t *testing.T) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 2, time.Minute, &clock)

	for i := 0; i < 2; i++ {
		if ok, _ := rl.Allow("1.1.1.1"); !ok {
			t.Fatalf("request %d should pass", i+1)
		}
	}

	clock = clock.Add(20 * time.Second)
	ok, retry := rl.Allow("1.1.1.1")
	if ok {
		t.Error("third request should be limited")
	}
	if retry != 40*time.Second {
		t.Errorf("retry = %v, want 40s", retry)
	}

	if ok, _ := rl.Allow("2.2.2.2"); !ok {
		t.Error("other clients have their own window")
	}

	clock = clock.Add(40 * time.Second)
	if ok, _ := rl.Allow("1.1.1.1"); !ok {
		t.Error("allowance should reset with the next window")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 1, time.Minute, &clock)

	rl.Allow("1.1.1.1")
	clock = clock.Add(2 * time.Hour)
	rl.Allow("2.2.2.2")
	rl.cleanup()

	if _, ok := rl.clients["1.1.1.1"]; ok {
		t.Error("stale client should be removed")
	}
	if _, ok := rl.clients["2.2.2.2"]; !ok {
		t.Error("fresh client should be kept")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rl := newTestLimiter(t, 1, time.Minute, &clock)
	h := RateLimitMiddleware(rl, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("request %d: expected %d, got %d", i+1, want, w.Code)
		}
		if want == http.StatusTooManyRequests && w.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q, want 60", w.Header().Get("Retry-After"))
		}
	}
	if _, ok := rl.clients["10.0.0.1"]; !ok {
		t.Error("client should be keyed by the bare address")
	}
}
