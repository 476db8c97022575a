package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	guard "github.com/khidma/guard"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu          sync.Mutex
	strikes     map[string][]guard.Strike
	suspensions map[string]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		strikes:     make(map[string][]guard.Strike),
		suspensions: make(map[string]time.Time),
	}
}

// AddStrike records the strike and returns the active count for its
// owner, evaluated at the strike's creation time.
func (m *MemoryStore) AddStrike(ctx context.Context, strike guard.Strike) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strike.ID == "" {
		strike.ID = uuid.NewString()
	}
	m.strikes[strike.OwnerRef] = append(m.strikes[strike.OwnerRef], strike)

	return m.countActiveLocked(strike.OwnerRef, strike.CreatedAt), nil
}

// CountActiveStrikes counts non-expired strikes for the owner.
func (m *MemoryStore) CountActiveStrikes(ctx context.Context, ownerRef string, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countActiveLocked(ownerRef, now), nil
}

func (m *MemoryStore) countActiveLocked(ownerRef string, now time.Time) int {
	count := 0
	for _, s := range m.strikes[ownerRef] {
		if s.Active(now) {
			count++
		}
	}
	return count
}

// GetSuspendedUntil returns the owner's suspension expiry, if any.
func (m *MemoryStore) GetSuspendedUntil(ctx context.Context, ownerRef string) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	until, ok := m.suspensions[ownerRef]
	if !ok {
		return nil, nil
	}
	u := until
	return &u, nil
}

// SetSuspendedUntil records the owner's suspension expiry.
func (m *MemoryStore) SetSuspendedUntil(ctx context.Context, ownerRef string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suspensions[ownerRef] = until
	return nil
}

// ClearStrikes forgets all strikes and any suspension for the owner.
func (m *MemoryStore) ClearStrikes(ctx context.Context, ownerRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.strikes, ownerRef)
	delete(m.suspensions, ownerRef)
	return nil
}

// Ping always succeeds for the in-memory store.
func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
