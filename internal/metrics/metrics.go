package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Provider calls
	ProviderCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opportunities",
		Subsystem: "provider",
		Name:      "calls_total",
		Help:      "Total external provider calls by outcome",
	}, []string{"provider", "outcome"})

	ProviderCallLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "opportunities",
		Subsystem: "provider",
		Name:      "call_duration_seconds",
		Help:      "External provider call duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
	}, []string{"provider"})

	// Cache tiers
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opportunities",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Cache tier lookups by result (hit, miss, error)",
	}, []string{"tier", "result"})

	// Sync
	SyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opportunities",
		Subsystem: "sync",
		Name:      "runs_total",
		Help:      "Total source sync runs",
	}, []string{"source"})

	SyncRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opportunities",
		Subsystem: "sync",
		Name:      "records_total",
		Help:      "Records processed by sync, by kind (new, updated, unchanged, invalid)",
	}, []string{"source", "kind"})

	SyncLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "opportunities",
		Subsystem: "sync",
		Name:      "duration_seconds",
		Help:      "Source sync run duration",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"source"})

	// Personalization
	PersonalizeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "opportunities",
		Subsystem: "personalize",
		Name:      "duration_seconds",
		Help:      "Ranked opportunity request duration",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
	}, []string{"mode"})

	EligibilityEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "opportunities",
		Subsystem: "eligibility",
		Name:      "evaluations_total",
		Help:      "Eligibility evaluations by status and degraded flag",
	}, []string{"status", "degraded"})
)

// ObserveProviderCall records the outcome and duration of one provider call
func ObserveProviderCall(provider string, startedAt time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ProviderCallsTotal.WithLabelValues(provider, outcome).Inc()
	ProviderCallLatency.WithLabelValues(provider).Observe(time.Since(startedAt).Seconds())
}
