// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package database

import (
	"context"
	"fmt"
	"time"
)

const (
	tablePokemon  = "pokemon"
	tablePokestop = "pokestop"
	tableGym      = "gym"
	tableScanned  = "scannedlocation"
)

var tableSchemas = []string{
	`CREATE TABLE IF NOT EXISTS pokemon (
		encounter_id VARCHAR PRIMARY KEY,
		spawnpoint_id VARCHAR,
		pokemon_id INTEGER NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		disappear_time TIMESTAMP NOT NULL,
		last_modified TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS pokestop (
		pokestop_id VARCHAR PRIMARY KEY,
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		last_modified TIMESTAMP,
		lure_expiration TIMESTAMP,
		active_pokemon_id INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS gym (
		gym_id VARCHAR PRIMARY KEY,
		team_id INTEGER NOT NULL,
		guard_pokemon_id INTEGER NOT NULL DEFAULT 0,
		gym_points INTEGER NOT NULL DEFAULT 0,
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		last_modified TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS scannedlocation (
		scanned_id VARCHAR PRIMARY KEY,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		last_modified TIMESTAMP NOT NULL,
		band VARCHAR NOT NULL DEFAULT 'full'
	)`,
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_pokemon_disappear ON pokemon(disappear_time)`,
	`CREATE INDEX IF NOT EXISTS idx_pokemon_position ON pokemon(latitude, longitude)`,
	`CREATE INDEX IF NOT EXISTS idx_pokestop_position ON pokestop(latitude, longitude)`,
	`CREATE INDEX IF NOT EXISTS idx_gym_position ON gym(latitude, longitude)`,
	`CREATE INDEX IF NOT EXISTS idx_scanned_modified ON scannedlocation(last_modified)`,
}

// createTables creates all entity tables
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range tableSchemas {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// createIndexes creates the position and time indexes used by the queries
func (db *DB) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
