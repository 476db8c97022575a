package deep

import (
	"context"
	"log"
	"time"

	guard "github.com/khidma/guard"
)

// CallEntry is one audit record for a generative-text call. Content is
// never logged; only its truncated hash.
type CallEntry struct {
	Service       string        `json:"service"`
	Operation     string        `json:"operation"`
	ContentHash   string        `json:"content_hash"`
	Duration      time.Duration `json:"duration_ms"`
	Success       bool          `json:"success"`
	CacheHit      bool          `json:"cache_hit,omitempty"`
	RetryCount    int           `json:"retry_count,omitempty"`
	ErrorCategory string        `json:"error_category,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// CallLogger records generative-text call audits.
type CallLogger interface {
	Log(ctx context.Context, entry CallEntry)
}

// StdLogger writes call audits to the standard logger.
type StdLogger struct{}

// Log prints one call audit line.
func (StdLogger) Log(ctx context.Context, e CallEntry) {
	if e.Success {
		log.Printf("[%s] %s hash=%s duration=%dms cache_hit=%v retries=%d",
			e.Service, e.Operation, e.ContentHash, e.Duration.Milliseconds(), e.CacheHit, e.RetryCount)
		return
	}
	log.Printf("[%s] %s hash=%s duration=%dms retries=%d error=[%s] %s",
		e.Service, e.Operation, e.ContentHash, e.Duration.Milliseconds(), e.RetryCount,
		e.ErrorCategory, e.ErrorMessage)
}

// NopLogger discards call audits.
type NopLogger struct{}

func (NopLogger) Log(ctx context.Context, entry CallEntry) {}

// newCallEntry starts an entry; finish with done or fail.
func newCallEntry(operation, contentHash string) (CallEntry, time.Time) {
	return CallEntry{
		Service:     serviceName,
		Operation:   operation,
		ContentHash: contentHash,
	}, time.Now()
}

func (e CallEntry) done(start time.Time, cacheHit bool, retries int) CallEntry {
	e.Duration = time.Since(start)
	e.Success = true
	e.CacheHit = cacheHit
	e.RetryCount = retries
	return e
}

func (e CallEntry) fail(start time.Time, retries int, err error) CallEntry {
	e.Duration = time.Since(start)
	e.Success = false
	e.RetryCount = retries
	e.ErrorCategory = string(guard.GetErrorCategory(err))
	if err != nil {
		e.ErrorMessage = err.Error()
	}
	return e
}
