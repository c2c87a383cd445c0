// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Store Metrics:
  - db_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - db_query_errors_total: Failed queries (counter)
  - entities_upserted_total: Records written by bulk upserts (counter)
    Labels: kind (pokemon, pokestop, gym, scanned)
  - import_features_skipped_total: Malformed records skipped (counter)
    Labels: source (geojson, nats)

Redirect Metrics:
  - redirect_submitted_total: Submissions by result (counter)
  - redirect_dropped_total: Pending requests evicted on overflow (counter)
  - redirect_pending: Requests waiting for the scanner (gauge)

Relay and Client Metrics:
  - ws_clients: Connected WebSocket clients (gauge)
  - scan_client_requests_total: Scan client step requests by result (counter)
  - nats_messages_total: Relay messages by direction and result (counter)
  - circuit_breaker_state: Breaker state per name (gauge)

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "pokemon", time.Since(start), err)

	metrics.RecordUpsert(string(models.KindGym), written)
*/
package metrics
