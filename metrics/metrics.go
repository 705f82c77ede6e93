// Package metrics exposes Prometheus collectors for the predictor.
//
// Collectors register on the default registry through promauto and are
// served by promhttp at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "college_predictor"

var (
	// RecommendationRequests counts resolved recommendation requests by
	// outcome (live, degraded).
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_requests_total",
			Help:      "Resolved recommendation requests by outcome.",
		},
		[]string{"outcome"},
	)

	// StaleResponses counts responses dropped because a newer request was
	// issued before they resolved.
	StaleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_stale_total",
			Help:      "Recommendation responses discarded as superseded.",
		},
	)

	FilterLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_loads_total",
			Help:      "Filter option loads by result (ok, unavailable).",
		},
		[]string{"result"},
	)

	BackendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls to the recommendation backend.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Backend circuit breaker state (0 closed, 1 half-open, 2 open).",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)
)
