// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package main is the Spawnwatch server: a live map of pokemon, pokestops,
gyms and scan coverage around a configured origin, plus the hand-off that
lets map users move the scanner.

# Application Architecture

	RootSupervisor ("spawnwatch")
	├── DataSupervisor ("data-layer")
	│   └── DuckDB checkpoints (store.backend=duckdb)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocket hub (map refresh pushes)
	│   └── NATS relay (optional: redirects out, entity batches in)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Routes served by the API layer:

	GET  /                map page
	GET  /raw_data        entities in a bounding box
	GET  /loc             scan origin
	GET  /next_loc        queue a redirect (query parameters)
	POST /next_loc        queue a redirect (form body)
	GET  /mobile          nearby pokemon, nearest first
	GET  /mobile.json     the same list as JSON
	GET  /pokevision      live preview scan around a point
	POST /import          GeoJSON sightings import
	GET  /ws              websocket refresh channel
	GET  /health          liveness and readiness under /health/live, /health/ready
	GET  /metrics         Prometheus metrics
	GET  /swagger/*       OpenAPI document and UI

# Configuration

Koanf v2 layers defaults, an optional config.yaml, and environment
variables (highest priority):

	PORT=5000
	ORIGIN_LATITUDE=40.7580
	ORIGIN_LONGITUDE=-73.9855
	FIXED_LOCATION=false          # true rejects every /next_loc with 403
	GMAPS_KEY=<browser key>
	STORE_BACKEND=duckdb          # duckdb or memory
	DUCKDB_PATH=/data/spawnwatch.duckdb
	REDIRECT_CAPACITY=8
	POKEMON_NAMES_FILE=/data/locales/pokemon.en.json
	SCAN_CLIENT_URL=http://scanner:8080   # enables /pokevision
	NATS_ENABLED=false
	NATS_EMBEDDED=true
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server with a 10 second drain, shuts the relay down, takes a final DuckDB
checkpoint and closes the store.
*/
package main
