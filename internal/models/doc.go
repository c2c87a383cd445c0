// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package models defines the entities shared by the store, the HTTP API and the
scanner relay.

Entity Collections:

  - Pokemon: time-bounded wild sightings, active until DisappearTime
  - Pokestop: stationary points of interest with an optional lure
  - Gym: control points owned by a team, with mutable points
  - ScannedLocation: scan coverage cells keyed by S2 token

Support Types:

  - Timestamp: a UTC instant whose JSON form is epoch milliseconds
  - BoundingBox: four independently optional bounds with lenient parsing
  - LocationRequest: an operator-requested scan origin
  - ParseError: a per-record rejection produced during ingestion

Every entity has a Key (its identity) and a Validate method; ingestion paths
decode records one at a time, collect ParseErrors for the bad ones, and pass
the good ones through DedupByKey before upserting.
*/
package models
