// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package memstore is an in-memory entity store backed by one R-tree per
// entity kind.
//
// It implements the same query and bulk upsert contract as the DuckDB store
// and is selected with STORE_BACKEND=memory. Nothing is persisted; it suits
// development, tests and short-lived scanner sessions.
//
// Records are indexed as degenerate rectangles around their position, bounding
// box queries use SearchIntersect and are then filtered exactly against the
// requested bounds, so the inclusive edge semantics match the SQL store.
package memstore
