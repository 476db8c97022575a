// Package cache provides the TTL key-value store used to memoize
// semantic verdicts per content hash. The interface is small on
// purpose: get, set-with-TTL, nothing else.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a TTL-bounded key-value store. Implementations must be safe
// for concurrent population; they are not required to deduplicate
// concurrent computations for the same key.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// entry is one in-memory cache record.
type entry struct {
	value     string
	expiresAt time.Time
}

// Memory is a process-local Cache for development and tests. Expired
// entries are dropped lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewMemoryWithClock creates an in-memory cache with an injected clock,
// for deterministic TTL tests.
func NewMemoryWithClock(now func() time.Time) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get returns the value for key if it has not expired.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.After(m.now()) {
		m.dropIfStale(key, e)
		return "", false, nil
	}
	return e.value, true, nil
}

// dropIfStale deletes key only while it still holds the expired entry
// the caller observed, so a Set racing the lazy expiry is not lost.
func (m *Memory) dropIfStale(key string, stale entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.entries[key]; ok && cur == stale {
		delete(m.entries, key)
	}
}

// Set stores value under key for ttl.
func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}
