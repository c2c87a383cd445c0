// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package scanclient performs on-demand preview scans around a location.

A preview walks the hexagonal spiral of step locations produced by
geo.LocationSteps and asks a Client for the wild pokemon visible at each
step. The results back the /pokevision endpoint.

Components:

  - Client: the interface a scan backend implements
  - HTTPClient: JSON client against an external scanner endpoint
  - BreakerClient: wraps any Client with a gobreaker circuit breaker
  - Previewer: paces step requests with a token bucket and collects sightings

Failure Handling:

A failed step is logged and skipped; the preview still returns whatever the
other steps produced. When the circuit is open every remaining step is
rejected immediately, so a dead scanner costs one timeout rather than one per
step.
*/
package scanclient
