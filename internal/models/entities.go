// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package models

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/tomtom215/spawnwatch/internal/geo"
)

// Kind names an entity collection.
type Kind string

const (
	KindPokemon         Kind = "pokemon"
	KindPokestop        Kind = "pokestop"
	KindGym             Kind = "gym"
	KindScannedLocation Kind = "scanned"
)

// Scan bands for ScannedLocation.
const (
	BandFull    = "full"
	BandPartial = "partial"
)

var (
	errMissingID       = errors.New("missing identity")
	errInvalidPosition = errors.New("invalid position")
)

// Pokemon is a wild sighting, active until DisappearTime. Expired rows are
// kept in the store for history and excluded by active queries.
type Pokemon struct {
	EncounterID   string     `json:"encounter_id"`
	SpawnpointID  string     `json:"spawnpoint_id,omitempty"`
	PokemonID     int        `json:"pokemon_id"`
	PokemonName   string     `json:"pokemon_name,omitempty"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	DisappearTime Timestamp  `json:"disappear_time" swaggertype:"integer" format:"int64"`
	LastModified  *Timestamp `json:"last_modified,omitempty" swaggertype:"integer" format:"int64"`
}

// Key returns the encounter id.
func (p Pokemon) Key() string { return p.EncounterID }

// Validate checks identity, position and that the sighting disappears after
// it was observed.
func (p Pokemon) Validate() error {
	if p.EncounterID == "" {
		return errMissingID
	}
	if p.PokemonID <= 0 {
		return fmt.Errorf("invalid pokemon_id %d", p.PokemonID)
	}
	if !geo.ValidCoordinate(p.Latitude, p.Longitude) {
		return errInvalidPosition
	}
	if p.DisappearTime.IsZero() {
		return errors.New("missing disappear_time")
	}
	if p.LastModified != nil && !p.LastModified.IsZero() && !p.DisappearTime.After(p.LastModified.Time) {
		return errors.New("disappear_time must be after last_modified")
	}
	return nil
}

// EncodeEncounterID converts a legacy encounter id into its stored form.
func EncodeEncounterID(raw string) string {
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Pokestop is a stationary point of interest.
type Pokestop struct {
	PokestopID      string     `json:"pokestop_id"`
	Enabled         bool       `json:"enabled"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	LastModified    Timestamp  `json:"last_modified" swaggertype:"integer" format:"int64"`
	LureExpiration  *Timestamp `json:"lure_expiration" swaggertype:"integer" format:"int64"`
	ActivePokemonID *int       `json:"active_pokemon_id"`
}

// Key returns the pokestop id.
func (s Pokestop) Key() string { return s.PokestopID }

// Validate checks identity and position.
func (s Pokestop) Validate() error {
	if s.PokestopID == "" {
		return errMissingID
	}
	if !geo.ValidCoordinate(s.Latitude, s.Longitude) {
		return errInvalidPosition
	}
	return nil
}

// Gym is a control point owned by a team.
type Gym struct {
	GymID          string    `json:"gym_id"`
	TeamID         int       `json:"team_id"`
	GuardPokemonID int       `json:"guard_pokemon_id"`
	GymPoints      int       `json:"gym_points"`
	Enabled        bool      `json:"enabled"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	LastModified   Timestamp `json:"last_modified" swaggertype:"integer" format:"int64"`
}

// Key returns the gym id.
func (g Gym) Key() string { return g.GymID }

// Validate checks identity, team and position.
func (g Gym) Validate() error {
	if g.GymID == "" {
		return errMissingID
	}
	if g.TeamID < 0 || g.TeamID > 3 {
		return fmt.Errorf("invalid team_id %d", g.TeamID)
	}
	if !geo.ValidCoordinate(g.Latitude, g.Longitude) {
		return errInvalidPosition
	}
	return nil
}

// ScannedLocation records when a scan cell was last visited.
type ScannedLocation struct {
	ScannedID    string    `json:"scanned_id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	LastModified Timestamp `json:"last_modified" swaggertype:"integer" format:"int64"`
	Band         string    `json:"band"`
}

// Key returns the scan cell id.
func (c ScannedLocation) Key() string { return c.ScannedID }

// Normalize fills in a missing cell id from the position and a missing band.
func (c ScannedLocation) Normalize() ScannedLocation {
	if c.ScannedID == "" && geo.ValidCoordinate(c.Latitude, c.Longitude) {
		c.ScannedID = geo.CellToken(c.Latitude, c.Longitude)
	}
	if c.Band == "" {
		c.Band = BandFull
	}
	return c
}

// Validate checks identity, position and band.
func (c ScannedLocation) Validate() error {
	if c.ScannedID == "" {
		return errMissingID
	}
	if !geo.ValidCoordinate(c.Latitude, c.Longitude) {
		return errInvalidPosition
	}
	if c.Band != BandFull && c.Band != BandPartial {
		return fmt.Errorf("invalid band %q", c.Band)
	}
	if c.LastModified.IsZero() {
		return errors.New("missing last_modified")
	}
	return nil
}
