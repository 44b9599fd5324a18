// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

// Package metrics holds the Prometheus collectors exposed on /metrics.
//
// Collectors are registered on the default registry through promauto.
// Callers use the Record helpers rather than touching collectors directly:
//
//	metrics.RecordMatchRequest("mentor", 5, 3*time.Millisecond, nil)
//	metrics.RecordAPIRequest("GET", "/api/v1/mentorship/...", "200", d)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Matching Metrics
	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_match_requests_total",
			Help: "Total number of mentorship match searches",
		},
		[]string{"intent", "outcome"},
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentormatch_match_duration_seconds",
			Help:    "Duration of mentorship match searches in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"intent"},
	)

	MatchResultsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentormatch_match_results",
			Help:    "Number of matches returned per search",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
		[]string{"intent"},
	)

	CompatibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mentormatch_compatibility_score",
			Help:    "Distribution of returned mentorship compatibility scores",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	// Relationship Metrics
	RelationshipTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_relationship_transitions_total",
			Help: "Relationship lifecycle actions by result",
		},
		[]string{"action", "result"},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_recommend_requests_total",
			Help: "Total number of content recommendation requests",
		},
		[]string{"type", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentormatch_recommend_duration_seconds",
			Help:    "Duration of content recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"type"},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_events_published_total",
			Help: "Relationship events published by result",
		},
		[]string{"event_type", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_events_consumed_total",
			Help: "Relationship events consumed by the audit subscriber",
		},
		[]string{"event_type"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mentormatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentormatch_store_operation_duration_seconds",
			Help:    "Duration of repository operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_store_gc_runs_total",
			Help: "Badger value log GC runs by result",
		},
		[]string{"result"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentormatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentormatch_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mentormatch_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mentormatch_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

func outcome(err error, empty bool) string {
	switch {
	case err != nil:
		return "error"
	case empty:
		return "empty"
	default:
		return "success"
	}
}

// RecordMatchRequest records a mentorship match search.
func RecordMatchRequest(intent string, results int, duration time.Duration, err error) {
	MatchRequestsTotal.WithLabelValues(intent, outcome(err, results == 0)).Inc()
	MatchDuration.WithLabelValues(intent).Observe(duration.Seconds())
	if err == nil {
		MatchResultsReturned.WithLabelValues(intent).Observe(float64(results))
	}
}

// ObserveCompatibility records a returned compatibility score.
func ObserveCompatibility(score float64) {
	CompatibilityScore.Observe(score)
}

// RecordTransition records a relationship lifecycle action.
func RecordTransition(action string, err error) {
	result := "success"
	if err != nil {
		result = "rejected"
	}
	RelationshipTransitions.WithLabelValues(action, result).Inc()
}

// RecordRecommendRequest records a content recommendation request.
func RecordRecommendRequest(recType string, results int, duration time.Duration, err error) {
	RecommendRequestsTotal.WithLabelValues(recType, outcome(err, results == 0)).Inc()
	RecommendDuration.WithLabelValues(recType).Observe(duration.Seconds())
}

// RecordEventPublished records a publish attempt.
func RecordEventPublished(eventType string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(eventType, result).Inc()
}

// RecordEventConsumed records an event handled by a subscriber.
func RecordEventConsumed(eventType string) {
	EventsConsumed.WithLabelValues(eventType).Inc()
}

// SetCircuitBreakerState exports a breaker state as 0, 1 or 2.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordStoreOperation records a repository call.
func RecordStoreOperation(backend, operation string, duration time.Duration) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// RecordStoreGC records a value log GC attempt.
func RecordStoreGC(result string) {
	StoreGCRuns.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
