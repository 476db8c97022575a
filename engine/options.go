package engine

import (
	"github.com/khidma/guard/chat"
	"github.com/khidma/guard/deep"
	"github.com/khidma/guard/rules"
)

// Options configures the engine.
type Options struct {
	// SafetyMatcher is the fast-path rule matcher for submissions.
	// Defaults to the stock multilingual table.
	SafetyMatcher *rules.Matcher

	// Moderator is the semantic fallback. When nil, CheckDeep stops at
	// the fast path.
	Moderator *deep.Moderator

	// Escalation enforces the chat strike policy. Required for
	// CheckChatMessage.
	Escalation *chat.Escalation
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		SafetyMatcher: rules.NewSafetyMatcher(),
	}
}
