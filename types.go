package guard

import "time"

// Verdict is the outcome of a safety check. It is a value type and is
// never persisted; the same shape is produced by the fast rule path,
// the chat path, and the semantic path so callers cannot drift on
// field names between them.
type Verdict struct {
	Allowed          bool      `json:"allowed"`
	Reason           Reason    `json:"reason,omitempty"`
	Category         Category  `json:"category,omitempty"`
	RiskLevel        RiskLevel `json:"risk_level,omitempty"`
	DetectedLanguage Language  `json:"detected_language,omitempty"`

	// ImprovedText is a polished short title suggested by the semantic
	// classifier, set only when the content was judged clean.
	ImprovedText string `json:"improved_text,omitempty"`

	// Detail is the classifier's free-form explanation, if any.
	Detail string `json:"detail,omitempty"`

	// NeedsManualReview flags the content for the human review queue.
	NeedsManualReview bool `json:"needs_manual_review,omitempty"`

	// AIError marks a fail-open verdict produced because the semantic
	// collaborator was unreachable or returned an unusable payload.
	AIError bool `json:"ai_error,omitempty"`

	// SuspendedUntil is set when the verdict is a suspension rejection.
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
}

// Clean returns an allowed verdict with no findings.
func Clean() Verdict {
	return Verdict{Allowed: true}
}

// Rejected returns a denied verdict for the given reason and category.
func Rejected(reason Reason, category Category) Verdict {
	return Verdict{Allowed: false, Reason: reason, Category: category}
}

// Strike is one detected chat violation. Strikes are immutable once
// created: they are never updated, only read and aggregated, and they
// stop counting when ExpiresAt passes.
type Strike struct {
	ID            string    `json:"id" db:"id"`
	OwnerRef      string    `json:"owner_ref" db:"owner_ref"`
	ViolationType Category  `json:"violation_type" db:"violation_type"`
	Snippet       string    `json:"snippet" db:"snippet"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	ExpiresAt     time.Time `json:"expires_at" db:"expires_at"`
}

// Active reports whether the strike still counts at the given instant.
func (s Strike) Active(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// User identifies a chat participant from the host application.
type User struct {
	ID string `json:"id"`
}

// Rule is one immutable moderation rule. Rules are configuration,
// loaded once and evaluated in declaration order: categories in their
// declared priority order, language groups in order within a category.
type Rule struct {
	Category  Category `json:"category"`
	LangGroup string   `json:"language_group"`
	Pattern   string   `json:"pattern"`
}

// WhitelistPhrase is a known-legitimate phrase. A case-insensitive
// substring match against any whitelist phrase bypasses rule
// evaluation entirely.
type WhitelistPhrase struct {
	Language Language `json:"language"`
	Phrase   string   `json:"phrase"`
}

// Clock returns the current time. Services take a Clock so the TTL
// arithmetic is deterministic under test.
type Clock func() time.Time
