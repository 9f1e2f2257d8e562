// Package metrics defines the Prometheus collectors of the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recgames",
		Name:      "recommend_requests_total",
		Help:      "Recommendation requests by dispatch mode.",
	}, []string{"mode"})

	ModelCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recgames",
		Name:      "model_cache_hits_total",
		Help:      "Model cache lookups served from memory.",
	})

	ModelCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recgames",
		Name:      "model_cache_misses_total",
		Help:      "Model cache lookups that triggered a load.",
	})

	ModelCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recgames",
		Name:      "model_cache_evictions_total",
		Help:      "Model cache entries evicted by the LRU policy.",
	})

	ExclusionQueryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recgames",
		Name:      "exclusion_query_failures_total",
		Help:      "Collection exclusion queries that failed and degraded to the seed set.",
	})
)
