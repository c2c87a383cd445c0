// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package api provides the HTTP surface of the live spawn map.

# Routes

Data endpoints, all GET unless noted:

	/                 map page (HTML)
	/raw_data         entities in a bounding box, JSON
	/loc              configured scan origin, JSON {"lat","lng"}
	/next_loc         GET|POST, queue a scan redirect, plain text
	/mobile           active pokemon ranked by distance, HTML
	/mobile.json      the same list as JSON
	/pokevision       on-demand preview scan around a point, JSON
	/import           POST, GeoJSON FeatureCollection of sightings, plain text
	/ws               websocket live updates

Operational endpoints:

	/health, /health/live, /health/ready
	/metrics          Prometheus exposition

# Query Parameters

/raw_data accepts swLat, swLng, neLat and neLng. Each bound is optional and
independently applied; values that do not parse as finite numbers are
ignored rather than rejected. The pokemon, pokestops, gyms and scanned flags
select which entity groups are returned (defaults true, false, true, true),
ids restricts pokemon to a comma separated species list and recent widens
pokemon to those that disappeared within the configured lookback.

All timestamps in JSON responses are integer milliseconds since the Unix
epoch in UTC.

# Errors

Parameter errors on the legacy text endpoints answer 400 "bad parameters".
Queuing a redirect while the origin is fixed answers 403. Store failures
answer 500 with a JSON APIError of code DATABASE_ERROR; details of the
underlying error are logged, not returned.

# Middleware

Every route runs behind request id assignment, real IP extraction, panic
recovery, CORS and Prometheus instrumentation. Data routes are gzip
compressed. /next_loc and /import are rate limited per client IP with
go-chi/httprate.
*/
package api
