package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache lookups satisfied without a store round-trip, by entity.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vlockster_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"entity"},
	)

	// CacheMisses counts cache lookups that fell through to the backing store, by entity.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vlockster_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"entity"},
	)

	// QueryFailures counts store queries that returned an error, by operation.
	QueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vlockster_query_failures_total",
			Help: "Total number of failed store queries",
		},
		[]string{"operation"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vlockster_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
