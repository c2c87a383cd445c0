// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

const (
	upsertPokemonSQL = `INSERT INTO pokemon (` + pokemonColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (encounter_id) DO UPDATE SET
			spawnpoint_id = EXCLUDED.spawnpoint_id,
			pokemon_id = EXCLUDED.pokemon_id,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			disappear_time = EXCLUDED.disappear_time,
			last_modified = EXCLUDED.last_modified`

	upsertPokestopSQL = `INSERT INTO pokestop (` + pokestopColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (pokestop_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			last_modified = EXCLUDED.last_modified,
			lure_expiration = EXCLUDED.lure_expiration,
			active_pokemon_id = EXCLUDED.active_pokemon_id`

	upsertGymSQL = `INSERT INTO gym (` + gymColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (gym_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			guard_pokemon_id = EXCLUDED.guard_pokemon_id,
			gym_points = EXCLUDED.gym_points,
			enabled = EXCLUDED.enabled,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			last_modified = EXCLUDED.last_modified`

	upsertScannedSQL = `INSERT INTO scannedlocation (` + scannedColumns + `)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (scanned_id) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			last_modified = EXCLUDED.last_modified,
			band = EXCLUDED.band`
)

// upsertSpec describes how one entity kind is written
type upsertSpec[T any] struct {
	kind  models.Kind
	table string
	sql   string
	key   func(T) string
	args  func(T) []interface{}
}

// bulkUpsert deduplicates batch (last occurrence wins) and writes each record
// in its own statement under that record's row lock.
func bulkUpsert[T any](ctx context.Context, db *DB, spec upsertSpec[T], batch []T) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	if db.closed.Load() {
		return 0, ErrStoreClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	batch = models.DedupByKey(batch, spec.key)

	written := 0
	for _, rec := range batch {
		if err := db.upsertRow(ctx, spec.kind, spec.key(rec), spec.sql, spec.args(rec)); err != nil {
			metrics.RecordDBQuery("upsert", spec.table, time.Since(start), err)
			metrics.RecordUpsert(string(spec.kind), written)
			return written, fmt.Errorf("failed to upsert %s %q: %w", spec.kind, spec.key(rec), err)
		}
		written++
	}

	metrics.RecordDBQuery("upsert", spec.table, time.Since(start), nil)
	metrics.RecordUpsert(string(spec.kind), written)
	return written, nil
}

// upsertRow executes one upsert statement while holding the row lock.
// Implements retry logic for transaction conflicts with exponential backoff.
func (db *DB) upsertRow(ctx context.Context, kind models.Kind, id, stmt string, args []interface{}) error {
	mu := db.acquireRowLock(kind, id)
	defer db.releaseRowLock(mu)

	const maxRetries = 3
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.conn.ExecContext(ctx, stmt, args...)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return fmt.Errorf("operation timed out or canceled: %w", ctx.Err())
		}

		if isInternalError(err) {
			return fmt.Errorf("FATAL: DuckDB internal error: %w", err)
		}

		if isTransactionConflict(err) && attempt < maxRetries-1 {
			backoff := time.Millisecond * time.Duration(1<<uint(attempt)) // 1ms, 2ms, 4ms
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		return storeError("upsert "+string(kind), err)
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// BulkUpsertPokemon inserts or fully replaces pokemon keyed by encounter id.
func (db *DB) BulkUpsertPokemon(ctx context.Context, batch []models.Pokemon) (int, error) {
	return bulkUpsert(ctx, db, upsertSpec[models.Pokemon]{
		kind:  models.KindPokemon,
		table: tablePokemon,
		sql:   upsertPokemonSQL,
		key:   models.Pokemon.Key,
		args: func(p models.Pokemon) []interface{} {
			return []interface{}{
				p.EncounterID, nullString(p.SpawnpointID), p.PokemonID, p.Latitude, p.Longitude,
				p.DisappearTime.UTC(), nullTimestamp(p.LastModified),
			}
		},
	}, batch)
}

// BulkUpsertPokestops inserts or fully replaces pokestops.
func (db *DB) BulkUpsertPokestops(ctx context.Context, batch []models.Pokestop) (int, error) {
	return bulkUpsert(ctx, db, upsertSpec[models.Pokestop]{
		kind:  models.KindPokestop,
		table: tablePokestop,
		sql:   upsertPokestopSQL,
		key:   models.Pokestop.Key,
		args: func(s models.Pokestop) []interface{} {
			var active interface{}
			if s.ActivePokemonID != nil {
				active = *s.ActivePokemonID
			}
			return []interface{}{
				s.PokestopID, s.Enabled, s.Latitude, s.Longitude,
				nullTime(s.LastModified), nullTimestamp(s.LureExpiration), active,
			}
		},
	}, batch)
}

// BulkUpsertGyms inserts or fully replaces gyms.
func (db *DB) BulkUpsertGyms(ctx context.Context, batch []models.Gym) (int, error) {
	return bulkUpsert(ctx, db, upsertSpec[models.Gym]{
		kind:  models.KindGym,
		table: tableGym,
		sql:   upsertGymSQL,
		key:   models.Gym.Key,
		args: func(g models.Gym) []interface{} {
			return []interface{}{
				g.GymID, g.TeamID, g.GuardPokemonID, g.GymPoints, g.Enabled,
				g.Latitude, g.Longitude, nullTime(g.LastModified),
			}
		},
	}, batch)
}

// BulkUpsertScannedLocations inserts or fully replaces scan cells.
func (db *DB) BulkUpsertScannedLocations(ctx context.Context, batch []models.ScannedLocation) (int, error) {
	return bulkUpsert(ctx, db, upsertSpec[models.ScannedLocation]{
		kind:  models.KindScannedLocation,
		table: tableScanned,
		sql:   upsertScannedSQL,
		key:   models.ScannedLocation.Key,
		args: func(c models.ScannedLocation) []interface{} {
			return []interface{}{c.ScannedID, c.Latitude, c.Longitude, c.LastModified.UTC(), c.Band}
		},
	}, batch)
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t models.Timestamp) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func nullTimestamp(t *models.Timestamp) interface{} {
	if t == nil {
		return nil
	}
	return nullTime(*t)
}
