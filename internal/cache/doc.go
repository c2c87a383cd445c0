// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package cache provides thread-safe in-memory caches with TTL support.

# Overview

Two structures are provided:

  - TTL: a generic key/value cache with per-entry expiration and a size cap.
    The API caches pokevision previews in it so repeated requests for the
    same origin do not fan out to the scan backend again.
  - LRU: a bounded recency list used for deduplication. The NATS relay
    records every entity batch message id in it and drops redeliveries.

Expiration is lazy: expired entries are removed when touched, and TTL also
sweeps expired entries before evicting live ones when it reaches capacity.
Neither structure starts background goroutines.

# Usage Example

	previews := cache.NewTTL[[]models.Sighting](30*time.Second, 256)
	key := cache.GenerateKey("pokevision", origin)
	if hit, ok := previews.Get(key); ok {
	    return hit
	}
	previews.Set(key, sightings)

	seen := cache.NewLRU(10000, 10*time.Minute)
	if seen.IsDuplicate(msg.UUID) {
	    msg.Ack()
	    return
	}
*/
package cache
