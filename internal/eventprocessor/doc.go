// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package eventprocessor relays scan coordination traffic over NATS JetStream.

Two flows run through it:

  - Outbound: every redirect accepted by /next_loc is consumed from the
    redirect queue by a LocationRelay and published on the next-location
    subject, where scanner workers pick up their next origin.
  - Inbound: scanners publish entity batches on the entities subject. The
    EntityHandler decodes them, skips malformed records, bulk upserts the
    rest into the entity store and broadcasts the change to websocket
    clients.

# Components

  - EmbeddedServer: optional in-process nats-server with JetStream
  - StreamInitializer: idempotent stream creation covering both subjects
  - Publisher: watermill-nats publisher behind a gobreaker circuit breaker
  - NewSubscriber: durable queue-group JetStream subscriber
  - Router: watermill router with recovery, retry and message id
    deduplication

# Wire Format

Redirects are published as

	{"lat": 40.758, "lon": -73.985, "requested_at": "2016-07-20T12:00:00Z"}

Entity batches use the /raw_data group names:

	{"pokemons": [...], "pokestops": [...], "gyms": [...], "scanned": [...]}

Timestamps inside records are epoch milliseconds. A batch with one bad record
is still applied; the bad record is logged and counted.

# Testing

The relay and handler depend on watermill's message.Publisher and
message.Subscriber only, so tests run them over the gochannel pub/sub without
a NATS server.
*/
package eventprocessor
