// Package chat implements the contact-info escalation policy for chat
// messages: detect leaked contact details, record strikes against the
// sender, and suspend chat after repeated violations inside the
// rolling window.
package chat

import (
	"context"
	"hash/fnv"
	"log"
	"sync"
	"time"

	guard "github.com/khidma/guard"
	"github.com/khidma/guard/hooks"
	"github.com/khidma/guard/metrics"
	"github.com/khidma/guard/rules"
	"github.com/khidma/guard/store"
	"github.com/khidma/guard/utils"
)

// lockStripes is the size of the fixed lock table users hash onto, so
// lock memory stays constant regardless of how many users are seen.
const lockStripes = 256

// Escalation enforces the strike and suspension policy. All checks for
// one user are serialized on a striped lock, so concurrent violating
// messages cannot both observe a pre-threshold count. Two users may
// share a stripe; that adds contention but never weakens per-user
// ordering.
type Escalation struct {
	store   store.Store
	matcher *rules.Matcher
	hooks   hooks.Hooks
	clock   guard.Clock

	locks [lockStripes]sync.Mutex
}

// Option customizes an Escalation service.
type Option func(*Escalation)

// WithHooks sets the notification hooks.
func WithHooks(h hooks.Hooks) Option {
	return func(e *Escalation) { e.hooks = h }
}

// WithClock injects the time source.
func WithClock(c guard.Clock) Option {
	return func(e *Escalation) { e.clock = c }
}

// WithMatcher overrides the contact-info matcher.
func WithMatcher(m *rules.Matcher) Option {
	return func(e *Escalation) { e.matcher = m }
}

// NewEscalation creates an escalation service backed by st.
func NewEscalation(st store.Store, opts ...Option) *Escalation {
	e := &Escalation{
		store:   st,
		matcher: rules.NewContactMatcher(),
		hooks:   hooks.NopHooks{},
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CheckMessage evaluates one chat message from user. Suspended users
// are rejected before any content evaluation, so their messages never
// accrue strikes. A contact-info hit records a strike and rejects the
// message; at the strike threshold the user is also suspended.
func (e *Escalation) CheckMessage(ctx context.Context, user guard.User, content string) (guard.Verdict, error) {
	lock := e.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	now := e.clock()

	until, err := e.store.GetSuspendedUntil(ctx, user.ID)
	if err != nil {
		return guard.Verdict{}, err
	}
	if until != nil && until.After(now) {
		metrics.ChecksTotal.WithLabelValues("chat", "rejected").Inc()
		u := *until
		return guard.Verdict{
			Allowed:        false,
			Reason:         guard.ReasonChatSuspended,
			SuspendedUntil: &u,
		}, nil
	}

	category, hit := e.matcher.FirstViolation(content)
	if !hit {
		metrics.ChecksTotal.WithLabelValues("chat", "allowed").Inc()
		return guard.Clean(), nil
	}

	verdict, err := e.recordStrike(ctx, user, category, content, now)
	if err != nil {
		return guard.Verdict{}, err
	}

	metrics.ChecksTotal.WithLabelValues("chat", "rejected").Inc()
	return verdict, nil
}

// IssueStrike records a strike for a violation detected outside
// CheckMessage, for example by the semantic path. It applies the same
// threshold policy.
func (e *Escalation) IssueStrike(ctx context.Context, user guard.User, category guard.Category, content string) (guard.Verdict, error) {
	lock := e.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	return e.recordStrike(ctx, user, category, content, e.clock())
}

// recordStrike persists the strike and fires exactly one of the two
// notifications: a warning below the threshold, a suspension at it.
// Callers must hold the user's lock.
func (e *Escalation) recordStrike(ctx context.Context, user guard.User, category guard.Category, content string, now time.Time) (guard.Verdict, error) {
	strike := guard.Strike{
		OwnerRef:      user.ID,
		ViolationType: category,
		Snippet:       utils.TruncateSnippet(content, guard.MaxSnippetLen),
		CreatedAt:     now,
		ExpiresAt:     now.Add(guard.StrikeTTL),
	}

	count, err := e.store.AddStrike(ctx, strike)
	if err != nil {
		return guard.Verdict{}, err
	}
	metrics.StrikesTotal.WithLabelValues(string(category)).Inc()

	verdict := guard.Verdict{
		Allowed:  false,
		Reason:   guard.ReasonContactInfo,
		Category: category,
	}

	if count >= guard.StrikeThreshold {
		until := now.Add(guard.SuspensionTerm)
		if err := e.store.SetSuspendedUntil(ctx, user.ID, until); err != nil {
			return guard.Verdict{}, err
		}
		metrics.SuspensionsTotal.Inc()
		verdict.SuspendedUntil = &until

		if err := e.hooks.OnSuspension(ctx, hooks.SuspensionEvent{
			Owner:       user,
			Until:       until,
			ActiveCount: count,
			Timestamp:   now,
		}); err != nil {
			log.Printf("[chat] suspension hook for %s: %v", user.ID, err)
		}
		return verdict, nil
	}

	if err := e.hooks.OnStrikeWarning(ctx, hooks.StrikeWarningEvent{
		Owner:         user,
		ActiveCount:   count,
		ViolationType: category,
		Timestamp:     now,
	}); err != nil {
		log.Printf("[chat] warning hook for %s: %v", user.ID, err)
	}
	return verdict, nil
}

// ActiveStrikes returns the user's current active strike count.
func (e *Escalation) ActiveStrikes(ctx context.Context, user guard.User) (int, error) {
	return e.store.CountActiveStrikes(ctx, user.ID, e.clock())
}

// ClearStrikes forgives a user: all strikes and any suspension are
// removed. Intended for support tooling.
func (e *Escalation) ClearStrikes(ctx context.Context, user guard.User) error {
	lock := e.userLock(user.ID)
	lock.Lock()
	defer lock.Unlock()

	return e.store.ClearStrikes(ctx, user.ID)
}

// userLock returns the stripe mutex serializing checks for one user.
func (e *Escalation) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &e.locks[h.Sum32()%lockStripes]
}
