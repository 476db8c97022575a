// Package metrics provides Prometheus instrumentation for the guard
// engine: check throughput per path, strike/suspension counters, and
// latency plus failure tracking for the semantic collaborator.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChecksTotal counts safety checks, labeled by path ("fast",
	// "deep", "chat") and result ("allowed", "rejected").
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_checks_total",
		Help: "Total number of content safety checks",
	}, []string{"path", "result"})

	// StrikesTotal counts strikes issued, labeled by violation type.
	StrikesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_strikes_total",
		Help: "Total number of chat strikes issued",
	}, []string{"violation_type"})

	// SuspensionsTotal counts chat suspensions triggered.
	SuspensionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "guard_suspensions_total",
		Help: "Total number of chat suspensions triggered",
	})

	// AIFailuresTotal counts fail-open verdicts caused by the
	// generative-text collaborator being unreachable or unparsable.
	AIFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "guard_ai_failures_total",
		Help: "Total number of fail-open semantic verdicts",
	})

	// DeepCacheTotal counts verdict cache lookups by outcome
	// ("hit", "miss").
	DeepCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_deep_cache_total",
		Help: "Verdict cache lookups for the semantic path",
	}, []string{"outcome"})

	// DeepLatency records end-to-end semantic check latency in seconds.
	DeepLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "guard_deep_latency_seconds",
		Help:    "Semantic moderation latency in seconds",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})
)

func init() {
	prometheus.MustRegister(
		ChecksTotal,
		StrikesTotal,
		SuspensionsTotal,
		AIFailuresTotal,
		DeepCacheTotal,
		DeepLatency,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
