// Package store provides the persistence interface for chat escalation
// state: strikes and suspensions.
package store

import (
	"context"
	"time"

	guard "github.com/khidma/guard"
)

// Store persists strikes and suspension state. Implementations must be
// safe for concurrent use.
type Store interface {
	// AddStrike records a strike and returns the number of active
	// strikes for the owner after the insert, both inside one
	// transaction so concurrent strikes for the same owner cannot
	// observe a stale count.
	AddStrike(ctx context.Context, strike guard.Strike) (activeCount int, err error)

	// CountActiveStrikes returns how many of the owner's strikes have
	// not expired at the given instant.
	CountActiveStrikes(ctx context.Context, ownerRef string, now time.Time) (int, error)

	// GetSuspendedUntil returns the owner's suspension expiry, or nil
	// when the owner has never been suspended.
	GetSuspendedUntil(ctx context.Context, ownerRef string) (*time.Time, error)

	// SetSuspendedUntil records or extends the owner's suspension.
	SetSuspendedUntil(ctx context.Context, ownerRef string, until time.Time) error

	// ClearStrikes removes all strikes and any suspension for the
	// owner. Used by support tooling to forgive a user.
	ClearStrikes(ctx context.Context, ownerRef string) error

	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases storage resources.
	Close() error
}
