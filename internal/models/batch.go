// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// ParseError describes one record rejected during ingestion. The rest of the
// batch is unaffected.
type ParseError struct {
	Kind  Kind
	Index int
	ID    string
	Err   error
}

func (e *ParseError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s record %d (%s): %v", e.Kind, e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("%s record %d: %v", e.Kind, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DedupByKey collapses records sharing a key. The surviving record for each
// key is the last one in batch order; its position is that of the key's
// first occurrence.
func DedupByKey[T any](batch []T, key func(T) string) []T {
	if len(batch) < 2 {
		return batch
	}

	index := make(map[string]int, len(batch))
	out := make([]T, 0, len(batch))
	for _, rec := range batch {
		k := key(rec)
		if i, ok := index[k]; ok {
			out[i] = rec
			continue
		}
		index[k] = len(out)
		out = append(out, rec)
	}
	return out
}

// EntityBatch is the typed form of a scanner batch after per-record decoding.
type EntityBatch struct {
	Pokemons  []Pokemon         `json:"pokemons,omitempty"`
	Pokestops []Pokestop        `json:"pokestops,omitempty"`
	Gyms      []Gym             `json:"gyms,omitempty"`
	Scanned   []ScannedLocation `json:"scanned,omitempty"`
}

// Len returns the total number of records in the batch.
func (b EntityBatch) Len() int {
	return len(b.Pokemons) + len(b.Pokestops) + len(b.Gyms) + len(b.Scanned)
}

// RawEntityBatch is the wire form of a scanner batch. Records stay raw so a
// single malformed record can be rejected without losing the others.
type RawEntityBatch struct {
	Pokemons  []json.RawMessage `json:"pokemons"`
	Pokestops []json.RawMessage `json:"pokestops"`
	Gyms      []json.RawMessage `json:"gyms"`
	Scanned   []json.RawMessage `json:"scanned"`
}

// Decode converts every record, returning the valid ones and one ParseError
// per rejected record.
func (r RawEntityBatch) Decode() (EntityBatch, []*ParseError) {
	var (
		batch EntityBatch
		errs  []*ParseError
	)

	batch.Pokemons, errs = decodeRecords(KindPokemon, r.Pokemons, func(p Pokemon) (Pokemon, error) {
		return p, p.Validate()
	}, Pokemon.Key, errs)
	batch.Pokestops, errs = decodeRecords(KindPokestop, r.Pokestops, func(s Pokestop) (Pokestop, error) {
		return s, s.Validate()
	}, Pokestop.Key, errs)
	batch.Gyms, errs = decodeRecords(KindGym, r.Gyms, func(g Gym) (Gym, error) {
		return g, g.Validate()
	}, Gym.Key, errs)
	batch.Scanned, errs = decodeRecords(KindScannedLocation, r.Scanned, func(c ScannedLocation) (ScannedLocation, error) {
		c = c.Normalize()
		return c, c.Validate()
	}, ScannedLocation.Key, errs)

	return batch, errs
}

func decodeRecords[T any](kind Kind, raw []json.RawMessage, check func(T) (T, error), key func(T) string, errs []*ParseError) ([]T, []*ParseError) {
	if len(raw) == 0 {
		return nil, errs
	}
	out := make([]T, 0, len(raw))
	for i, msg := range raw {
		var rec T
		if err := json.Unmarshal(msg, &rec); err != nil {
			errs = append(errs, &ParseError{Kind: kind, Index: i, Err: err})
			continue
		}
		rec, err := check(rec)
		if err != nil {
			errs = append(errs, &ParseError{Kind: kind, Index: i, ID: key(rec), Err: err})
			continue
		}
		out = append(out, rec)
	}
	return out, errs
}
