// Package metrics provides Prometheus metrics for news-hub.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "newshub"

// Fetch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
	OutcomeTimeout = "timeout"
)

var (
	// AdapterFetchTotal counts upstream adapter calls by outcome.
	AdapterFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_fetch_total",
			Help:      "Total number of upstream adapter calls",
		},
		[]string{"adapter", "outcome"},
	)

	// AdapterFetchDuration measures upstream adapter call duration.
	AdapterFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "adapter_fetch_duration_seconds",
			Help:      "Duration of upstream adapter calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"adapter"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Article cache lookups by result",
		},
		[]string{"result"},
	)

	// ResolverOutcomeTotal counts which resolution step answered a lookup.
	ResolverOutcomeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_outcome_total",
			Help:      "Article resolutions by the step that answered them",
		},
		[]string{"step"},
	)

	AggregatedArticles = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregated_articles",
			Help:      "Distribution of article counts returned by facade operations",
			Buckets:   []float64{0, 5, 10, 20, 50, 100, 200, 300, 400},
		},
		[]string{"operation"},
	)
)

// RecordFetch records one adapter call.
func RecordFetch(adapter, outcome string, duration time.Duration) {
	AdapterFetchTotal.WithLabelValues(adapter, outcome).Inc()
	AdapterFetchDuration.WithLabelValues(adapter).Observe(duration.Seconds())
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

func RecordResolution(step string) {
	ResolverOutcomeTotal.WithLabelValues(step).Inc()
}

func RecordAggregation(operation string, count int) {
	AggregatedArticles.WithLabelValues(operation).Observe(float64(count))
}
