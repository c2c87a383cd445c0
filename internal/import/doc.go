// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package spawnimport loads pokemon sightings from GeoJSON FeatureCollections.
//
// Each feature must be a Point geometry with coordinates in [longitude,
// latitude] order and carry these properties:
//
//   - pokemon_id: integer species number
//   - encounter_id: string or integer legacy encounter id, stored base64 encoded
//   - disappear_time: epoch milliseconds or an RFC 3339 string
//   - spawnpoint_id: optional string
//
// # Malformed Features
//
// A feature that fails to decode or validate is skipped. The skip is logged
// with the feature index, counted in ImportStats and in the
// import_features_skipped_total metric, and the remaining features are still
// imported. A document with no features member is rejected as a whole with
// ErrMissingFeatures.
//
// # Architecture Integration
//
//	GeoJSON document (POST /import or spawnctl import)
//	       ↓
//	Mapper (feature → models.Pokemon)
//	       ↓
//	Upserter.BulkUpsertPokemon (DuckDB or in-memory store)
//	       ↓
//	Notifier.BroadcastEntitiesUpdated (websocket hub)
package spawnimport
