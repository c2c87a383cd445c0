// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of entity store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of entity store query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	EntitiesUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entities_upserted_total",
			Help: "Total number of entity records written by bulk upserts",
		},
		[]string{"kind"},
	)

	ImportFeaturesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_features_skipped_total",
			Help: "Total number of ingested records skipped as malformed",
		},
		[]string{"source"}, // "geojson", "nats"
	)

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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Location Redirect Metrics
	RedirectSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redirect_submitted_total",
			Help: "Total number of location redirect submissions by outcome",
		},
		[]string{"result"}, // "accepted", "invalid", "disabled"
	)

	RedirectDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redirect_dropped_total",
			Help: "Total number of pending redirects evicted by newer ones",
		},
	)

	RedirectPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "redirect_pending",
			Help: "Current number of redirects waiting for the scanner",
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_clients",
			Help: "Current number of connected WebSocket clients",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Scan Client Metrics
	ScanClientRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scan_client_requests_total",
			Help: "Total number of scan client step requests",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
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

	// NATS Relay Metrics
	NATSMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_total",
			Help: "Total number of relay messages by direction and outcome",
		},
		[]string{"direction", "result"}, // direction: "published", "consumed"
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpsert adds n written records of the given kind.
func RecordUpsert(kind string, n int) {
	if n > 0 {
		EntitiesUpserted.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordSkipped adds n malformed records rejected by an ingestion source.
func RecordSkipped(source string, n int) {
	if n > 0 {
		ImportFeaturesSkipped.WithLabelValues(source).Add(float64(n))
	}
}

// RecordRedirect records the outcome of a redirect submission
func RecordRedirect(result string, pending int) {
	RedirectSubmitted.WithLabelValues(result).Inc()
	RedirectPending.Set(float64(pending))
}

// RecordNATS records a relay message
func RecordNATS(direction, result string) {
	NATSMessages.WithLabelValues(direction, result).Inc()
}
