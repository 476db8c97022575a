// Package hooks provides the hook interface for handling escalation
// events.
package hooks

import (
	"context"
)

// Hooks defines the interface for handling escalation events.
// Implement this interface to deliver user notifications. For any one
// strike, exactly one of the two callbacks fires: a warning below the
// suspension threshold, a suspension at it.
type Hooks interface {
	// OnStrikeWarning is called when a strike is recorded below the
	// suspension threshold.
	OnStrikeWarning(ctx context.Context, e StrikeWarningEvent) error

	// OnSuspension is called when a strike triggers a suspension.
	OnSuspension(ctx context.Context, e SuspensionEvent) error
}

// NopHooks is a no-op implementation of Hooks.
type NopHooks struct{}

// OnStrikeWarning does nothing.
func (NopHooks) OnStrikeWarning(ctx context.Context, e StrikeWarningEvent) error {
	return nil
}

// OnSuspension does nothing.
func (NopHooks) OnSuspension(ctx context.Context, e SuspensionEvent) error {
	return nil
}

// Ensure NopHooks implements Hooks.
var _ Hooks = NopHooks{}

// ChainHooks chains multiple Hooks implementations.
type ChainHooks []Hooks

// OnStrikeWarning calls all hooks in order.
func (ch ChainHooks) OnStrikeWarning(ctx context.Context, e StrikeWarningEvent) error {
	for _, h := range ch {
		if err := h.OnStrikeWarning(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnSuspension calls all hooks in order.
func (ch ChainHooks) OnSuspension(ctx context.Context, e SuspensionEvent) error {
	for _, h := range ch {
		if err := h.OnSuspension(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// FuncHooks allows using functions as hooks.
type FuncHooks struct {
	OnStrikeWarningFunc func(ctx context.Context, e StrikeWarningEvent) error
	OnSuspensionFunc    func(ctx context.Context, e SuspensionEvent) error
}

// OnStrikeWarning calls the function if set.
func (fh FuncHooks) OnStrikeWarning(ctx context.Context, e StrikeWarningEvent) error {
	if fh.OnStrikeWarningFunc != nil {
		return fh.OnStrikeWarningFunc(ctx, e)
	}
	return nil
}

// OnSuspension calls the function if set.
func (fh FuncHooks) OnSuspension(ctx context.Context, e SuspensionEvent) error {
	if fh.OnSuspensionFunc != nil {
		return fh.OnSuspensionFunc(ctx, e)
	}
	return nil
}
