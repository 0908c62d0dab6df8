// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package metrics registers the Prometheus collectors exported on /metrics.
//
// Collectors are package-level and registered with promauto at init, so
// every component records through the Record* helpers without wiring a
// registry through constructors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ranking Pipeline Metrics
	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranking_duration_seconds",
			Help:    "Duration of one ranking pipeline run",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"}, // "ok", "deadline_fallback", "error"
	)

	RankingCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_candidates",
			Help:    "Number of candidate locations considered per ranking run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	DistanceResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "distance_resolutions_total",
			Help: "Distance resolutions by source",
		},
		[]string{"source"}, // "routed", "geodesic"
	)

	// Upstream Provider Metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of calls to routing, geocoding and language model providers",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "outcome"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_cache_lookups_total",
			Help: "Provider response cache lookups",
		},
		[]string{"cache", "result"}, // result: "hit", "miss"
	)

	// Conversation Metrics
	LLMFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_fallbacks_total",
			Help: "Language model calls that fell back to a degraded result",
		},
		[]string{"operation", "reason"},
	)

	ModeDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_mode_decisions_total",
			Help: "Mode classifier decisions",
		},
		[]string{"mode"},
	)

	ChatOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_outcomes_total",
			Help: "Terminal states reached by the conversation flows",
		},
		[]string{"flow", "outcome"},
	)

	// Catalog Store Metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Duration of catalog store queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_query_errors_total",
			Help: "Catalog store query failures",
		},
		[]string{"backend", "operation"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRanking records one pipeline run.
func RecordRanking(outcome string, candidates int, duration time.Duration) {
	RankingDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	RankingCandidates.Observe(float64(candidates))
}

// RecordDistanceResolution counts a resolved distance by source.
func RecordDistanceResolution(source string) {
	DistanceResolutions.WithLabelValues(source).Inc()
}

// RecordUpstreamCall records the duration and outcome of a provider call.
func RecordUpstreamCall(provider, outcome string, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(provider, outcome).Observe(duration.Seconds())
}

// RecordCacheLookup counts a provider cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordLLMFallback counts a language model call that degraded.
func RecordLLMFallback(operation, reason string) {
	LLMFallbacks.WithLabelValues(operation, reason).Inc()
}

// RecordModeDecision counts a classifier decision.
func RecordModeDecision(mode string) {
	ModeDecisions.WithLabelValues(mode).Inc()
}

// RecordChatOutcome counts a terminal state of a conversation flow.
func RecordChatOutcome(flow, outcome string) {
	ChatOutcomes.WithLabelValues(flow, outcome).Inc()
}

// RecordStoreQuery records a catalog query.
func RecordStoreQuery(backend, operation string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(backend, operation).Inc()
	}
}
