// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package database provides the persistent entity store for Spawnwatch,
// backed by DuckDB.
//
// # Overview
//
// The package is the data layer between the HTTP API, the NATS relay and
// DuckDB. It answers bounding box and time window queries for the four entity
// collections and ingests externally supplied batches with conflict-safe
// upserts.
//
// # Architecture
//
//   - database.go: lifecycle (open, initialize, close, checkpoint)
//   - database_schema.go: table and index creation
//   - database_connection.go: pool configuration and error classification
//   - database_locks.go: per-row write locks for concurrent upserts
//   - entities_query.go: active, recent and id-filtered queries
//   - entities_upsert.go: deduplicated whole-record bulk upserts
//   - query/: parameterized WHERE clause builder
//
// # Time Handling
//
// Every timestamp column is a DuckDB TIMESTAMP holding UTC. Values are
// normalized with time.Time.UTC before binding and after scanning.
//
// # Concurrency
//
// Each record of a batch is written in its own INSERT ... ON CONFLICT DO
// UPDATE statement while holding a mutex keyed by kind and identity. Writes
// to different identities proceed in parallel; two writers of the same
// identity are serialized, and transaction conflicts are retried with a
// short exponential backoff.
//
// # Usage Example
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	n, err := db.BulkUpsertPokemon(ctx, batch)
//	active, err := db.GetActivePokemon(ctx, models.NewBoundingBox(40.7, -74.0, 40.8, -73.9))
package database
