// Package deep implements semantic moderation through an external
// generative-text service. It is the fallback path: the rule matcher
// runs first, and this package handles the content the rules could not
// decide. Verdicts are memoized by content hash, and any failure of
// the external service produces a fail-open verdict flagged for manual
// review rather than an error.
package deep

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	guard "github.com/khidma/guard"
	"github.com/khidma/guard/cache"
	"github.com/khidma/guard/lang"
	"github.com/khidma/guard/metrics"
	"github.com/khidma/guard/utils"
)

// Moderator runs semantic safety checks against a TextGenerator.
type Moderator struct {
	gen      TextGenerator
	cache    cache.Cache
	retry    utils.RetryConfig
	logger   CallLogger
	timeout  time.Duration
	cacheTTL time.Duration
}

// ModeratorOption customizes a Moderator.
type ModeratorOption func(*Moderator)

// WithCache sets the verdict cache. Without one, every call reaches
// the generative service.
func WithCache(c cache.Cache) ModeratorOption {
	return func(m *Moderator) { m.cache = c }
}

// WithRetryConfig overrides the retry behavior for generative calls.
func WithRetryConfig(cfg utils.RetryConfig) ModeratorOption {
	return func(m *Moderator) { m.retry = cfg }
}

// WithLogger sets the call-audit logger.
func WithLogger(l CallLogger) ModeratorOption {
	return func(m *Moderator) { m.logger = l }
}

// WithTimeout bounds one moderation call end to end, retries included.
func WithTimeout(d time.Duration) ModeratorOption {
	return func(m *Moderator) { m.timeout = d }
}

// WithCacheTTL overrides how long verdicts are memoized.
func WithCacheTTL(d time.Duration) ModeratorOption {
	return func(m *Moderator) { m.cacheTTL = d }
}

// NewModerator creates a semantic moderator around gen.
func NewModerator(gen TextGenerator, opts ...ModeratorOption) *Moderator {
	m := &Moderator{
		gen:      gen,
		retry:    utils.DefaultRetryConfig(),
		logger:   StdLogger{},
		timeout:  30 * time.Second,
		cacheTTL: guard.VerdictCacheTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Moderate classifies content semantically. It never returns an error:
// if the generative service is unreachable, times out, or returns an
// unusable payload, the verdict fails open as allowed with
// NeedsManualReview and AIError set.
func (m *Moderator) Moderate(ctx context.Context, content string) guard.Verdict {
	start := time.Now()
	defer func() {
		metrics.DeepLatency.Observe(time.Since(start).Seconds())
	}()

	content = strings.TrimSpace(content)
	if content == "" {
		return guard.Clean()
	}

	detected := lang.Detect(content)
	key := utils.HashText(content)
	entry, began := newCallEntry("moderate", utils.TruncateHash(key, 12))

	if m.cache != nil {
		if cached, ok := m.lookup(ctx, key); ok {
			metrics.DeepCacheTotal.WithLabelValues("hit").Inc()
			m.logger.Log(ctx, entry.done(began, true, 0))
			return cached
		}
		metrics.DeepCacheTotal.WithLabelValues("miss").Inc()
	}

	cctx := ctx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	prompt := buildPrompt(content, detected)

	retries := 0
	cfg := m.retry
	userOnRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		retries = attempt
		if userOnRetry != nil {
			userOnRetry(attempt, err, delay)
		}
	}
	retryer := utils.NewRetryer(cfg)

	raw, err := utils.DoWithResult(cctx, retryer, func() (string, error) {
		return m.gen.Generate(cctx, prompt)
	})
	if err != nil {
		m.logger.Log(ctx, entry.fail(began, retries, err))
		return m.failOpen(detected)
	}

	mv, err := parseModelResponse(raw)
	if err != nil {
		m.logger.Log(ctx, entry.fail(began, retries, err))
		return m.failOpen(detected)
	}

	verdict := m.buildVerdict(mv, detected)
	m.logger.Log(ctx, entry.done(began, false, retries))

	if m.cache != nil {
		if data, err := json.Marshal(verdict); err == nil {
			// Cache write failures are non-fatal; the verdict stands.
			_ = m.cache.Set(ctx, key, string(data), m.cacheTTL)
		}
	}

	return verdict
}

// lookup reads a memoized verdict. Cache errors count as misses.
func (m *Moderator) lookup(ctx context.Context, key string) (guard.Verdict, bool) {
	raw, ok, err := m.cache.Get(ctx, key)
	if err != nil || !ok {
		return guard.Verdict{}, false
	}
	var v guard.Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return guard.Verdict{}, false
	}
	return v, true
}

// buildVerdict maps a parsed model response onto a Verdict, applying
// the defaulting rules for missing or unknown fields.
func (m *Moderator) buildVerdict(mv modelVerdict, detected guard.Language) guard.Verdict {
	v := guard.Verdict{
		Allowed:          mv.IsClean,
		Detail:           strings.TrimSpace(mv.Reason),
		RiskLevel:        guard.ParseRiskLevel(mv.RiskLevel),
		DetectedLanguage: detected,
	}
	if reported, ok := translateLanguage(mv.DetectedLanguage); ok {
		v.DetectedLanguage = reported
	}
	if mv.IsClean {
		v.ImprovedText = strings.TrimSpace(mv.ImprovedTitle)
		return v
	}
	v.Reason = guard.ReasonAIFlagged
	v.Category = translateCategory(mv.Category)
	return v
}

// failOpen is the verdict for a failed semantic check: allowed, but
// flagged for the manual review queue.
func (m *Moderator) failOpen(detected guard.Language) guard.Verdict {
	metrics.AIFailuresTotal.Inc()
	return guard.Verdict{
		Allowed:           true,
		NeedsManualReview: true,
		AIError:           true,
		DetectedLanguage:  detected,
	}
}
