// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package memstore

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// ErrStoreClosed is returned by every operation after Close.
var ErrStoreClosed = errors.New("memstore: store is closed")

// Store is a thread-safe in-memory entity store.
type Store struct {
	mu        sync.RWMutex
	pokemon   *index[models.Pokemon]
	pokestops *index[models.Pokestop]
	gyms      *index[models.Gym]
	scanned   *index[models.ScannedLocation]
	closed    bool

	// nowFunc is replaceable in tests
	nowFunc func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		pokemon: newIndex(func(p models.Pokemon) (float64, float64) {
			return p.Latitude, p.Longitude
		}),
		pokestops: newIndex(func(s models.Pokestop) (float64, float64) {
			return s.Latitude, s.Longitude
		}),
		gyms: newIndex(func(g models.Gym) (float64, float64) {
			return g.Latitude, g.Longitude
		}),
		scanned: newIndex(func(c models.ScannedLocation) (float64, float64) {
			return c.Latitude, c.Longitude
		}),
		nowFunc: time.Now,
	}
}

// Close releases the indexes. Subsequent calls return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ping reports whether the store is usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Counts returns the number of stored records per kind.
func (s *Store) Counts() map[models.Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[models.Kind]int{
		models.KindPokemon:         s.pokemon.len(),
		models.KindPokestop:        s.pokestops.len(),
		models.KindGym:             s.gyms.len(),
		models.KindScannedLocation: s.scanned.len(),
	}
}

// read runs fn under the read lock after checking ctx and the closed flag.
func read[T any](ctx context.Context, s *Store, table string, fn func() []T) ([]T, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	out := fn()
	s.mu.RUnlock()
	metrics.RecordDBQuery("select", table, time.Since(start), nil)
	return out, nil
}

// GetActivePokemon returns pokemon whose disappear time is still ahead.
func (s *Store) GetActivePokemon(ctx context.Context, bbox models.BoundingBox) ([]models.Pokemon, error) {
	now := s.nowFunc()
	return read(ctx, s, "pokemon", func() []models.Pokemon {
		return s.pokemon.search(bbox, func(p models.Pokemon) bool {
			return p.DisappearTime.After(now)
		})
	})
}

// GetActivePokemonByID is GetActivePokemon restricted to the given species.
func (s *Store) GetActivePokemonByID(ctx context.Context, ids []int, bbox models.BoundingBox) ([]models.Pokemon, error) {
	now := s.nowFunc()
	return read(ctx, s, "pokemon", func() []models.Pokemon {
		return s.pokemon.search(bbox, func(p models.Pokemon) bool {
			return p.DisappearTime.After(now) && slices.Contains(ids, p.PokemonID)
		})
	})
}

// GetRecentPokemon returns pokemon that disappeared less than lookback ago or
// are still active.
func (s *Store) GetRecentPokemon(ctx context.Context, lookback time.Duration, bbox models.BoundingBox) ([]models.Pokemon, error) {
	cutoff := s.nowFunc().Add(-lookback)
	return read(ctx, s, "pokemon", func() []models.Pokemon {
		return s.pokemon.search(bbox, func(p models.Pokemon) bool {
			return p.DisappearTime.After(cutoff)
		})
	})
}

// GetPokestops returns every pokestop in bbox.
func (s *Store) GetPokestops(ctx context.Context, bbox models.BoundingBox) ([]models.Pokestop, error) {
	return read(ctx, s, "pokestop", func() []models.Pokestop {
		return s.pokestops.search(bbox, nil)
	})
}

// GetGyms returns every gym in bbox.
func (s *Store) GetGyms(ctx context.Context, bbox models.BoundingBox) ([]models.Gym, error) {
	return read(ctx, s, "gym", func() []models.Gym {
		return s.gyms.search(bbox, nil)
	})
}

// GetRecentScanned returns cells scanned within lookback.
func (s *Store) GetRecentScanned(ctx context.Context, lookback time.Duration, bbox models.BoundingBox) ([]models.ScannedLocation, error) {
	cutoff := s.nowFunc().Add(-lookback)
	return read(ctx, s, "scannedlocation", func() []models.ScannedLocation {
		return s.scanned.search(bbox, func(c models.ScannedLocation) bool {
			return !c.LastModified.Before(cutoff)
		})
	})
}

// upsert dedups batch by key and replaces whole records in ix.
func upsert[T any](ctx context.Context, s *Store, kind models.Kind, ix *index[T], batch []T, key func(T) string) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	start := time.Now()
	batch = models.DedupByKey(batch, key)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrStoreClosed
	}
	for _, rec := range batch {
		ix.put(key(rec), rec)
	}
	s.mu.Unlock()

	metrics.RecordDBQuery("upsert", string(kind), time.Since(start), nil)
	metrics.RecordUpsert(string(kind), len(batch))
	return len(batch), nil
}

// BulkUpsertPokemon inserts or fully replaces pokemon keyed by encounter id.
func (s *Store) BulkUpsertPokemon(ctx context.Context, batch []models.Pokemon) (int, error) {
	return upsert(ctx, s, models.KindPokemon, s.pokemon, batch, models.Pokemon.Key)
}

// BulkUpsertPokestops inserts or fully replaces pokestops.
func (s *Store) BulkUpsertPokestops(ctx context.Context, batch []models.Pokestop) (int, error) {
	return upsert(ctx, s, models.KindPokestop, s.pokestops, batch, models.Pokestop.Key)
}

// BulkUpsertGyms inserts or fully replaces gyms.
func (s *Store) BulkUpsertGyms(ctx context.Context, batch []models.Gym) (int, error) {
	return upsert(ctx, s, models.KindGym, s.gyms, batch, models.Gym.Key)
}

// BulkUpsertScannedLocations inserts or fully replaces scan cells.
func (s *Store) BulkUpsertScannedLocations(ctx context.Context, batch []models.ScannedLocation) (int, error) {
	return upsert(ctx, s, models.KindScannedLocation, s.scanned, batch, models.ScannedLocation.Key)
}

// Pokemon returns the stored record for an encounter id.
func (s *Store) Pokemon(encounterID string) (models.Pokemon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pokemon.get(encounterID)
}

// Gym returns the stored record for a gym id.
func (s *Store) Gym(gymID string) (models.Gym, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gyms.get(gymID)
}
