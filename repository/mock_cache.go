package repository

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// MockCache is an in-process cache used when redis is not configured and in tests.
type MockCache struct {
	mu   sync.Mutex
	data map[string]cacheEntry
	now  func() time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]cacheEntry),
		now:  time.Now,
	}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.data, key)
		return "", false
	}
	return e.value, true
}

func (m *MockCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
