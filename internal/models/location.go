// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package models

import "time"

// LocationRequest is an operator-requested scan origin waiting to be
// consumed by the scanner.
type LocationRequest struct {
	Latitude    float64   `json:"lat"`
	Longitude   float64   `json:"lon"`
	RequestedAt time.Time `json:"requested_at"`
}

// WildPokemon is a raw sighting as reported by a scan client.
type WildPokemon struct {
	PokemonID             int     `json:"pokemon_id"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	LastModifiedTimestamp int64   `json:"last_modified_timestamp_ms"`
	TimeTillHiddenMillis  int64   `json:"time_till_hidden_ms"`
	EncounterID           string  `json:"encounter_id,omitempty"`
	SpawnpointID          string  `json:"spawnpoint_id,omitempty"`
}

// DisappearTime is the sighting's last modification plus its remaining time.
func (w WildPokemon) DisappearTime() Timestamp {
	return Timestamp{Time: time.UnixMilli(w.LastModifiedTimestamp + w.TimeTillHiddenMillis).UTC()}
}

// Sighting is the preview representation returned by /pokevision.
type Sighting struct {
	PokemonID     int       `json:"pokemonId"`
	DisappearTime Timestamp `json:"disappear_time" swaggertype:"integer" format:"int64"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
}

// ToSighting converts a raw sighting for the preview response.
func (w WildPokemon) ToSighting() Sighting {
	return Sighting{
		PokemonID:     w.PokemonID,
		DisappearTime: w.DisappearTime(),
		Latitude:      w.Latitude,
		Longitude:     w.Longitude,
	}
}
