// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/spawnwatch/internal/database/query"
	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

const (
	pokemonColumns  = "encounter_id, spawnpoint_id, pokemon_id, latitude, longitude, disappear_time, last_modified"
	pokestopColumns = "pokestop_id, enabled, latitude, longitude, last_modified, lure_expiration, active_pokemon_id"
	gymColumns      = "gym_id, team_id, guard_pokemon_id, gym_points, enabled, latitude, longitude, last_modified"
	scannedColumns  = "scanned_id, latitude, longitude, last_modified, band"
)

// selectRows runs a SELECT over table with the builder's predicates and maps
// each row with scan.
func selectRows[T any](ctx context.Context, db *DB, table, columns string, wb *query.WhereBuilder, scan func(*sql.Rows) (T, error)) ([]T, error) {
	if db.closed.Load() {
		return nil, ErrStoreClosed
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	where, args := wb.BuildWithPrefix()
	stmt := fmt.Sprintf("SELECT %s FROM %s %s", columns, table, where)

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		metrics.RecordDBQuery("select", table, time.Since(start), err)
		return nil, storeError("query "+table, err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]T, 0)
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			metrics.RecordDBQuery("select", table, time.Since(start), err)
			return nil, storeError("scan "+table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordDBQuery("select", table, time.Since(start), err)
		return nil, storeError("iterate "+table, err)
	}

	metrics.RecordDBQuery("select", table, time.Since(start), nil)
	return out, nil
}

// storeError wraps a driver error with the failed operation
func storeError(op string, err error) error {
	if isConnectionError(err) {
		logging.Error().Err(err).Str("operation", op).Msg("Entity store connection lost")
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// GetActivePokemon returns pokemon whose disappear time is still ahead.
func (db *DB) GetActivePokemon(ctx context.Context, bbox models.BoundingBox) ([]models.Pokemon, error) {
	wb := query.NewWhereBuilder().
		AddAfter("disappear_time", db.nowFunc()).
		AddBoundingBox("latitude", "longitude", bbox)
	return selectRows(ctx, db, tablePokemon, pokemonColumns, wb, scanPokemon)
}

// GetActivePokemonByID is GetActivePokemon restricted to the given species.
func (db *DB) GetActivePokemonByID(ctx context.Context, ids []int, bbox models.BoundingBox) ([]models.Pokemon, error) {
	wb := query.NewWhereBuilder().
		AddAfter("disappear_time", db.nowFunc()).
		AddIntIn("pokemon_id", ids).
		AddBoundingBox("latitude", "longitude", bbox)
	return selectRows(ctx, db, tablePokemon, pokemonColumns, wb, scanPokemon)
}

// GetRecentPokemon returns pokemon that disappeared less than lookback ago or
// are still active.
func (db *DB) GetRecentPokemon(ctx context.Context, lookback time.Duration, bbox models.BoundingBox) ([]models.Pokemon, error) {
	wb := query.NewWhereBuilder().
		AddAfter("disappear_time", db.nowFunc().Add(-lookback)).
		AddBoundingBox("latitude", "longitude", bbox)
	return selectRows(ctx, db, tablePokemon, pokemonColumns, wb, scanPokemon)
}

// GetPokestops returns every pokestop in bbox.
func (db *DB) GetPokestops(ctx context.Context, bbox models.BoundingBox) ([]models.Pokestop, error) {
	wb := query.NewWhereBuilder().AddBoundingBox("latitude", "longitude", bbox)
	return selectRows(ctx, db, tablePokestop, pokestopColumns, wb, scanPokestop)
}

// GetGyms returns every gym in bbox.
func (db *DB) GetGyms(ctx context.Context, bbox models.BoundingBox) ([]models.Gym, error) {
	wb := query.NewWhereBuilder().AddBoundingBox("latitude", "longitude", bbox)
	return selectRows(ctx, db, tableGym, gymColumns, wb, scanGym)
}

// GetRecentScanned returns cells scanned within lookback.
func (db *DB) GetRecentScanned(ctx context.Context, lookback time.Duration, bbox models.BoundingBox) ([]models.ScannedLocation, error) {
	wb := query.NewWhereBuilder().
		AddAtOrAfter("last_modified", db.nowFunc().Add(-lookback)).
		AddBoundingBox("latitude", "longitude", bbox)
	return selectRows(ctx, db, tableScanned, scannedColumns, wb, scanScanned)
}

// GetRecordCounts returns the number of rows per entity table
func (db *DB) GetRecordCounts(ctx context.Context) (map[models.Kind]int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tables := map[models.Kind]string{
		models.KindPokemon:         tablePokemon,
		models.KindPokestop:        tablePokestop,
		models.KindGym:             tableGym,
		models.KindScannedLocation: tableScanned,
	}
	counts := make(map[models.Kind]int64, len(tables))
	for kind, table := range tables {
		var n int64
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, storeError("count "+table, err)
		}
		counts[kind] = n
	}
	return counts, nil
}

func scanPokemon(rows *sql.Rows) (models.Pokemon, error) {
	var (
		p            models.Pokemon
		spawnpoint   sql.NullString
		disappear    time.Time
		lastModified sql.NullTime
	)
	if err := rows.Scan(&p.EncounterID, &spawnpoint, &p.PokemonID, &p.Latitude, &p.Longitude, &disappear, &lastModified); err != nil {
		return p, err
	}
	p.SpawnpointID = spawnpoint.String
	p.DisappearTime = models.NewTimestamp(disappear)
	p.LastModified = timestampPtr(lastModified)
	return p, nil
}

func scanPokestop(rows *sql.Rows) (models.Pokestop, error) {
	var (
		s              models.Pokestop
		lastModified   sql.NullTime
		lureExpiration sql.NullTime
		activePokemon  sql.NullInt64
	)
	if err := rows.Scan(&s.PokestopID, &s.Enabled, &s.Latitude, &s.Longitude, &lastModified, &lureExpiration, &activePokemon); err != nil {
		return s, err
	}
	if lastModified.Valid {
		s.LastModified = models.NewTimestamp(lastModified.Time)
	}
	s.LureExpiration = timestampPtr(lureExpiration)
	if activePokemon.Valid {
		id := int(activePokemon.Int64)
		s.ActivePokemonID = &id
	}
	return s, nil
}

func scanGym(rows *sql.Rows) (models.Gym, error) {
	var (
		g            models.Gym
		lastModified sql.NullTime
	)
	if err := rows.Scan(&g.GymID, &g.TeamID, &g.GuardPokemonID, &g.GymPoints, &g.Enabled, &g.Latitude, &g.Longitude, &lastModified); err != nil {
		return g, err
	}
	if lastModified.Valid {
		g.LastModified = models.NewTimestamp(lastModified.Time)
	}
	return g, nil
}

func scanScanned(rows *sql.Rows) (models.ScannedLocation, error) {
	var (
		c            models.ScannedLocation
		lastModified time.Time
	)
	if err := rows.Scan(&c.ScannedID, &c.Latitude, &c.Longitude, &lastModified, &c.Band); err != nil {
		return c, err
	}
	c.LastModified = models.NewTimestamp(lastModified)
	return c, nil
}

func timestampPtr(t sql.NullTime) *models.Timestamp {
	if !t.Valid {
		return nil
	}
	ts := models.NewTimestamp(t.Time)
	return &ts
}
