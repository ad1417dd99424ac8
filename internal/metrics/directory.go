package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTotalFetches        = "total_fetches"
	NameTotalCacheHits      = "total_cache_hits"
	NameTotalDedupedFetches = "total_deduped_fetches"
	NameTotalFetchRetries   = "total_fetch_retries"
	NameTotalRollbacks      = "total_rollbacks"
)

var TotalFetches = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalFetches,
		Help:      "Total fetches issued against the backing data source",
		Namespace: Namespace,
	},
)

var TotalCacheHits = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalCacheHits,
		Help:      "Total queries served from a fresh cache entry",
		Namespace: Namespace,
	},
)

var TotalDedupedFetches = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalDedupedFetches,
		Help:      "Total queries that joined an already in-flight fetch",
		Namespace: Namespace,
	},
)

var TotalFetchRetries = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalFetchRetries,
		Help:      "Total fetch attempts beyond the first",
		Namespace: Namespace,
	},
)

var TotalRollbacks = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalRollbacks,
		Help:      "Total optimistic mutations rolled back after a backend failure",
		Namespace: Namespace,
	},
)
