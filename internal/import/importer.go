// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package spawnimport

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// Upserter is the store operation the importer writes through.
type Upserter interface {
	BulkUpsertPokemon(ctx context.Context, batch []models.Pokemon) (int, error)
}

// Notifier is told how many pokemon an import wrote.
type Notifier interface {
	BroadcastEntitiesUpdated(kind models.Kind, count int)
}

// Importer handles importing GeoJSON sighting documents.
type Importer struct {
	store    Upserter
	notifier Notifier
	mapper   *Mapper

	mu   sync.RWMutex
	last *ImportStats
}

// NewImporter creates a GeoJSON importer. notifier may be nil.
func NewImporter(store Upserter, notifier Notifier) *Importer {
	return &Importer{
		store:    store,
		notifier: notifier,
		mapper:   NewMapper(),
	}
}

// Import parses data, skips malformed features and bulk upserts the rest.
// The returned stats are non-nil even when an error is returned.
func (i *Importer) Import(ctx context.Context, data []byte) (*ImportStats, error) {
	stats := &ImportStats{StartTime: time.Now()}

	features, err := ParseFeatureCollection(data)
	if err != nil {
		stats.EndTime = time.Now()
		return stats, err
	}
	stats.TotalFeatures = len(features)

	batch := make([]models.Pokemon, 0, len(features))
	for idx, raw := range features {
		p, err := i.mapper.ToPokemon(raw)
		if err != nil {
			perr := &models.ParseError{Kind: models.KindPokemon, Index: idx, ID: p.EncounterID, Err: err}
			stats.Errors = append(stats.Errors, perr)
			logging.Warn().Err(err).Int("feature", idx).Msg("Skipping malformed GeoJSON feature")
			continue
		}
		batch = append(batch, p)
	}
	stats.Skipped = len(stats.Errors)
	metrics.RecordSkipped("geojson", stats.Skipped)

	written, err := i.store.BulkUpsertPokemon(ctx, batch)
	stats.Imported = written
	stats.EndTime = time.Now()
	i.record(stats)
	if err != nil {
		return stats, fmt.Errorf("upsert imported pokemon: %w", err)
	}

	if i.notifier != nil {
		i.notifier.BroadcastEntitiesUpdated(models.KindPokemon, written)
	}

	logging.Info().
		Int("features", stats.TotalFeatures).
		Int("imported", stats.Imported).
		Int("skipped", stats.Skipped).
		Dur("duration", stats.Duration()).
		Msg("GeoJSON import completed")

	return stats, nil
}

func (i *Importer) record(stats *ImportStats) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.last = stats
}

// GetStats returns a copy of the most recent import statistics.
func (i *Importer) GetStats() *ImportStats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.last == nil {
		return &ImportStats{}
	}
	stats := *i.last
	return &stats
}
