package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avito_upstream_requests_total",
			Help: "Upstream Avito API calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "avito_upstream_request_duration_seconds",
			Help:    "Upstream Avito API call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	TokenRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "avito_token_refreshes_total",
			Help: "Client-credentials token exchanges performed",
		},
	)

	TokenCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "avito_token_cache_hits_total",
			Help: "Token requests served from the in-memory cache",
		},
	)
)
