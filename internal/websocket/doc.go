// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package websocket pushes live map updates to connected browsers.

The map page polls /raw_data; this package lets it refresh immediately when
new entities land or the scan origin moves, instead of waiting for the next
poll.

Key Components:

  - Hub: owns the client set and fans broadcasts out to every client
  - Client: one connection with a read pump (pings) and a write pump
  - Message: {"type": ..., "data": ...} envelope

Message Types:

  - entities_updated: {"kind":"pokemon","count":12} after a non-empty upsert
  - location_changed: {"lat":..,"lon":..} after an accepted /next_loc
  - ping / pong: client keepalive

Slow Clients:

Each client has a 256 message buffer. A client whose buffer is full when a
broadcast arrives is disconnected rather than allowed to stall the hub.

Supervision:

RunWithContext returns when its context ends, closing every client first, so
the hub can run as a suture service and be restarted cleanly.
*/
package websocket
