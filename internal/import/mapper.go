// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package spawnimport

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	geojson "github.com/paulmach/go.geojson"

	"github.com/tomtom215/spawnwatch/internal/models"
)

var (
	// ErrMissingFeatures is returned when a document has no features member.
	ErrMissingFeatures = errors.New("geojson: document has no features")

	// ErrInvalidDocument is returned when the document or its features
	// member cannot be decoded at all.
	ErrInvalidDocument = errors.New("geojson: invalid document")
)

var (
	errNotPoint          = errors.New("geometry is not a point")
	errMissingEncounter  = errors.New("missing encounter_id")
	errInvalidEncounter  = errors.New("encounter_id must be a string or an integer")
	errMissingPokemonID  = errors.New("missing pokemon_id")
	errFractionalSpecies = errors.New("pokemon_id must be an integer")
)

// ParseFeatureCollection splits a FeatureCollection into its raw features.
// Features are returned undecoded so one bad feature cannot fail the rest.
func ParseFeatureCollection(data []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Features json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	raw := bytes.TrimSpace(envelope.Features)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrMissingFeatures
	}

	var features []json.RawMessage
	if err := json.Unmarshal(raw, &features); err != nil {
		return nil, fmt.Errorf("%w: features is not an array: %v", ErrInvalidDocument, err)
	}
	return features, nil
}

// Mapper converts GeoJSON features into pokemon records.
type Mapper struct{}

// NewMapper creates a feature mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// identityProperties are decoded separately from the geojson package so that
// large integer encounter ids keep their exact digits.
type identityProperties struct {
	Properties struct {
		EncounterID   json.RawMessage  `json:"encounter_id"`
		DisappearTime models.Timestamp `json:"disappear_time"`
	} `json:"properties"`
}

// ToPokemon decodes and validates one feature.
func (m *Mapper) ToPokemon(raw json.RawMessage) (models.Pokemon, error) {
	var p models.Pokemon

	feature, err := geojson.UnmarshalFeature(raw)
	if err != nil {
		return p, fmt.Errorf("decode feature: %w", err)
	}
	if feature.Geometry == nil || !feature.Geometry.IsPoint() {
		return p, errNotPoint
	}
	if len(feature.Geometry.Point) < 2 {
		return p, fmt.Errorf("point has %d coordinates", len(feature.Geometry.Point))
	}
	p.Longitude = feature.Geometry.Point[0]
	p.Latitude = feature.Geometry.Point[1]

	species, err := feature.PropertyFloat64("pokemon_id")
	if err != nil {
		return p, errMissingPokemonID
	}
	if species != math.Trunc(species) {
		return p, errFractionalSpecies
	}
	p.PokemonID = int(species)

	if spawnpoint, err := feature.PropertyString("spawnpoint_id"); err == nil {
		p.SpawnpointID = spawnpoint
	}

	var ident identityProperties
	if err := json.Unmarshal(raw, &ident); err != nil {
		return p, fmt.Errorf("decode properties: %w", err)
	}
	encounter, err := encounterLiteral(ident.Properties.EncounterID)
	if err != nil {
		return p, err
	}
	p.EncounterID = models.EncodeEncounterID(encounter)
	p.DisappearTime = ident.Properties.DisappearTime

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// encounterLiteral returns the legacy id text of a string or integer value.
func encounterLiteral(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errMissingEncounter
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", errInvalidEncounter
		}
		if s == "" {
			return "", errMissingEncounter
		}
		return s, nil
	}

	literal := string(raw)
	if _, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return literal, nil
	}
	if _, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return literal, nil
	}
	return "", errInvalidEncounter
}
