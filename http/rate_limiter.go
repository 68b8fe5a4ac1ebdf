package http

import (
	"sync"
	"time"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

// window tracks one client's requests inside the current fixed window.
type window struct {
	used    int
	started time.Time
}

// RateLimiter allows Capacity plan requests per client within each window.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	length   time.Duration
	clients  map[string]*window
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, length time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: max(capacity, 1),
		length:   length,
		clients:  make(map[string]*window),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stop:
			return
		}
	}
}

// cleanup forgets clients idle for longer than an hour or two windows,
// whichever is longer.
func (r *RateLimiter) cleanup() {
	stale := max(bucketCleanupThreshold, 2*r.length)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, w := range r.clients {
		if now.Sub(w.started) > stale {
			delete(r.clients, client)
		}
	}
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow consumes one request for client. When the client is over its
// allowance it returns false and how long until the window resets.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.clients[client]
	if !ok || now.Sub(w.started) >= r.length {
		r.clients[client] = &window{used: 1, started: now}
		return true, 0
	}

	if w.used >= r.capacity {
		return false, w.started.Add(r.length).Sub(now)
	}
	w.used++
	return true, 0
}
