package query

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "techboard",
		Subsystem: "query",
		Name:      "cache_hits_total",
		Help:      "Reads served from a fresh cache entry.",
	})

	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "techboard",
		Subsystem: "query",
		Name:      "cache_misses_total",
		Help:      "Reads that issued a network fetch.",
	})

	cacheDeduped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "techboard",
		Subsystem: "query",
		Name:      "cache_deduped_total",
		Help:      "Reads that joined an in-flight fetch for the same key.",
	})

	cacheInvalidations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "techboard",
		Subsystem: "query",
		Name:      "cache_invalidations_total",
		Help:      "Entries newly marked stale by a mutation.",
	})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses, cacheDeduped, cacheInvalidations)
}
