package hooks

import (
	"time"

	guard "github.com/khidma/guard"
)

// StrikeWarningEvent is emitted when a strike is recorded below the
// suspension threshold.
type StrikeWarningEvent struct {
	// Owner is the user who received the strike.
	Owner guard.User `json:"owner"`

	// ActiveCount is the number of active strikes after this one.
	ActiveCount int `json:"active_count"`

	// ViolationType is the contact-info category that triggered it.
	ViolationType guard.Category `json:"violation_type"`

	// Timestamp is when the strike was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// SuspensionEvent is emitted when a strike reaches the threshold and
// the user is suspended from chat.
type SuspensionEvent struct {
	// Owner is the suspended user.
	Owner guard.User `json:"owner"`

	// Until is when the suspension lifts.
	Until time.Time `json:"until"`

	// ActiveCount is the number of active strikes at suspension time.
	ActiveCount int `json:"active_count"`

	// Timestamp is when the suspension was recorded.
	Timestamp time.Time `json:"timestamp"`
}
