// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package middleware provides net/http middleware used by the chi router.

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    chi route pattern
  - Compression: pooled gzip writers for JSON responses

All middleware has the func(http.Handler) http.Handler shape so it can be
passed straight to chi's Use and With.
*/
package middleware
