// Package metrics provides observability for the verification engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the verification engine.
type Metrics struct {
	// Evidence collection latencies by registry
	SourceLatency *prometheus.HistogramVec

	// Verification outcomes by final status
	Outcome *prometheus.CounterVec

	// Result cache lookups by outcome (hit/miss)
	CacheLookups *prometheus.CounterVec

	// Overall single-scheme verification latency
	VerifyLatency prometheus.Histogram
}

// New creates a Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schemetrust_source_collect_duration_seconds",
			Help:    "Duration of evidence collection per registry source",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),

		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schemetrust_verification_outcomes_total",
			Help: "Total verification outcomes by final status",
		}, []string{"status"}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "schemetrust_result_cache_lookups_total",
			Help: "Result cache lookups by outcome",
		}, []string{"outcome"}), // outcome: "hit", "miss"

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "schemetrust_verify_scheme_duration_seconds",
			Help:    "Duration of full single-scheme verification including source fan-out",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveSourceLatency records the duration of collecting from one registry.
func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a verification outcome.
func (m *Metrics) IncrementOutcome(status string) {
	if m != nil {
		m.Outcome.WithLabelValues(status).Inc()
	}
}

// RecordCacheHit records a result cache hit.
func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.CacheLookups.WithLabelValues("hit").Inc()
	}
}

// RecordCacheMiss records a result cache miss.
func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.CacheLookups.WithLabelValues("miss").Inc()
	}
}

// ObserveVerifyLatency records the total verification duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
