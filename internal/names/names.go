// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package names resolves pokemon species ids to display names.

Names come from an optional JSON locale file mapping decimal ids to names:

	{"1": "Bulbasaur", "16": "Pidgey"}

Ids missing from the file resolve to "#<id>" so every sighting can be
labelled even without locale data.
*/
package names

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/spawnwatch/internal/logging"
)

// Resolver maps species ids to names. The zero value resolves every id to
// its fallback. A Resolver is immutable after construction and safe for
// concurrent use.
type Resolver struct {
	names map[int]string
}

// New builds a resolver from an id to name map.
func New(names map[int]string) *Resolver {
	m := make(map[int]string, len(names))
	for id, name := range names {
		m[id] = name
	}
	return &Resolver{names: m}
}

// Load reads a locale file. An empty path returns a resolver with no names.
func Load(path string) (*Resolver, error) {
	if path == "" {
		return New(nil), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", path, err)
	}

	logging.Info().Str("path", path).Int("names", r.Len()).Msg("Pokemon names loaded")
	return r, nil
}

// Parse decodes locale JSON. Keys that are not integers are skipped.
func Parse(data []byte) (*Resolver, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	names := make(map[int]string, len(raw))
	for key, name := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			logging.Warn().Str("key", key).Msg("Skipping non-numeric locale key")
			continue
		}
		names[id] = name
	}
	return &Resolver{names: names}, nil
}

// Name returns the display name for id.
func (r *Resolver) Name(id int) string {
	if r != nil {
		if name, ok := r.names[id]; ok {
			return name
		}
	}
	return "#" + strconv.Itoa(id)
}

// Len returns the number of known names.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
