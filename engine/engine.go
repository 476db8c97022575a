// Package engine bundles the rule matcher, the semantic moderator,
// and the chat escalation service behind one entry point. Host
// applications construct an Engine once and route each piece of
// user-submitted text through the check that fits its surface.
package engine

import (
	"context"

	guard "github.com/khidma/guard"
	"github.com/khidma/guard/lang"
	"github.com/khidma/guard/metrics"
	"github.com/khidma/guard/rules"
)

// Engine is the top-level content-safety entry point.
type Engine struct {
	matcher    *rules.Matcher
	moderator  moderator
	escalation escalation
}

// moderator matches deep.Moderator.
type moderator interface {
	Moderate(ctx context.Context, content string) guard.Verdict
}

// escalation matches chat.Escalation.
type escalation interface {
	CheckMessage(ctx context.Context, user guard.User, content string) (guard.Verdict, error)
}

// New creates an engine from opts.
func New(opts Options) *Engine {
	if opts.SafetyMatcher == nil {
		opts.SafetyMatcher = rules.NewSafetyMatcher()
	}
	e := &Engine{matcher: opts.SafetyMatcher}
	if opts.Moderator != nil {
		e.moderator = opts.Moderator
	}
	if opts.Escalation != nil {
		e.escalation = opts.Escalation
	}
	return e
}

// resultLabel is the metric label for a check outcome.
func resultLabel(allowed bool) string {
	if allowed {
		return "allowed"
	}
	return "rejected"
}

// Check runs the fast rule path on content and returns a verdict.
func (e *Engine) Check(ctx context.Context, content string) guard.Verdict {
	category, hit := e.matcher.FirstViolation(content)
	metrics.ChecksTotal.WithLabelValues("fast", resultLabel(!hit)).Inc()

	if hit {
		v := guard.Rejected(guard.ReasonRuleViolation, category)
		v.DetectedLanguage = lang.Detect(content)
		return v
	}

	v := guard.Clean()
	v.DetectedLanguage = lang.Detect(content)
	return v
}

// IsClean reports whether content passes the fast rule path.
func (e *Engine) IsClean(content string) bool {
	clean := e.matcher.IsClean(content)
	metrics.ChecksTotal.WithLabelValues("fast", resultLabel(clean)).Inc()
	return clean
}

// Violations returns every distinct rule category matching content, in
// priority order.
func (e *Engine) Violations(content string) []guard.Category {
	cats := e.matcher.Violations(content)
	metrics.ChecksTotal.WithLabelValues("fast", resultLabel(len(cats) == 0)).Inc()
	return cats
}

// CheckDeep runs the fast path and, when the rules find nothing and a
// moderator is configured, escalates to the semantic check. The rule
// verdict wins whenever it rejects: the semantic path exists to catch
// what rules miss, not to overturn them.
func (e *Engine) CheckDeep(ctx context.Context, content string) guard.Verdict {
	v := e.Check(ctx, content)
	if !v.Allowed || e.moderator == nil {
		return v
	}

	deepVerdict := e.moderator.Moderate(ctx, content)
	metrics.ChecksTotal.WithLabelValues("deep", resultLabel(deepVerdict.Allowed)).Inc()
	return deepVerdict
}

// IsCleanDeep reports whether content passes both the fast rule path
// and the semantic check.
func (e *Engine) IsCleanDeep(ctx context.Context, content string) bool {
	return e.CheckDeep(ctx, content).Allowed
}

// CheckChatMessage evaluates one chat message under the escalation
// policy.
func (e *Engine) CheckChatMessage(ctx context.Context, user guard.User, content string) (guard.Verdict, error) {
	if e.escalation == nil {
		return guard.Verdict{}, guard.ErrStoreNotConfigured
	}
	return e.escalation.CheckMessage(ctx, user, content)
}
