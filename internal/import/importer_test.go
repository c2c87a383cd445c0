// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package spawnimport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/spawnwatch/internal/memstore"
	"github.com/tomtom215/spawnwatch/internal/models"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-73.98, 40.75]},
     "properties": {"pokemon_id": 16, "encounter_id": "abc", "disappear_time": 1469016000000, "spawnpoint_id": "89c25a1"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [-73.97, 40.76]},
     "properties": {"pokemon_id": 19, "encounter_id": 11529215046068469760, "disappear_time": "2016-07-20T12:00:00Z"}},
    {"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]},
     "properties": {"pokemon_id": 1, "encounter_id": "line", "disappear_time": 1469016000000}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]},
     "properties": {"encounter_id": "nospecies", "disappear_time": 1469016000000}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]},
     "properties": {"pokemon_id": 1.5, "encounter_id": "fraction", "disappear_time": 1469016000000}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]},
     "properties": {"pokemon_id": 1, "disappear_time": 1469016000000}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [1, 1]},
     "properties": {"pokemon_id": 1, "encounter_id": "badtime", "disappear_time": "tomorrow"}},
    {"type": "Feature", "geometry": {"type": "Point", "coordinates": [200, 1]},
     "properties": {"pokemon_id": 1, "encounter_id": "offmap", "disappear_time": 1469016000000}}
  ]
}`

type recordingNotifier struct {
	mu    sync.Mutex
	calls []int
}

func (n *recordingNotifier) BroadcastEntitiesUpdated(kind models.Kind, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if kind == models.KindPokemon {
		n.calls = append(n.calls, count)
	}
}

type failingStore struct{}

func (failingStore) BulkUpsertPokemon(context.Context, []models.Pokemon) (int, error) {
	return 0, errors.New("disk full")
}

func TestImport_SkipsMalformedFeatures(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	notifier := &recordingNotifier{}
	imp := NewImporter(store, notifier)

	stats, err := imp.Import(context.Background(), []byte(sampleCollection))
	require.NoError(t, err)

	assert.Equal(t, 8, stats.TotalFeatures)
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 6, stats.Skipped)
	assert.Len(t, stats.Errors, 6)
	assert.Equal(t, "Imported 2 pokemon (6 skipped)", stats.Summary())
	assert.Equal(t, []int{2}, notifier.calls)

	skippedIdx := make([]int, 0, len(stats.Errors))
	for _, perr := range stats.Errors {
		skippedIdx = append(skippedIdx, perr.Index)
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6, 7}, skippedIdx)

	p, ok := store.Pokemon(models.EncodeEncounterID("abc"))
	require.True(t, ok)
	assert.Equal(t, 16, p.PokemonID)
	assert.Equal(t, 40.75, p.Latitude, "coordinates are [lon, lat]")
	assert.Equal(t, -73.98, p.Longitude)
	assert.Equal(t, "89c25a1", p.SpawnpointID)
	assert.Equal(t, int64(1469016000000), p.DisappearTime.Millis())

	big, ok := store.Pokemon(models.EncodeEncounterID("11529215046068469760"))
	require.True(t, ok, "numeric encounter ids keep every digit")
	assert.True(t, big.DisappearTime.Equal(time.Date(2016, 7, 20, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, 2, imp.GetStats().Imported)
}

func TestImport_MissingFeatures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"no member", `{"type":"FeatureCollection"}`},
		{"null member", `{"type":"FeatureCollection","features":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			imp := NewImporter(memstore.New(), nil)
			_, err := imp.Import(context.Background(), []byte(tt.doc))
			assert.ErrorIs(t, err, ErrMissingFeatures)
		})
	}
}

func TestImport_InvalidDocument(t *testing.T) {
	t.Parallel()
	imp := NewImporter(memstore.New(), nil)

	_, err := imp.Import(context.Background(), []byte(`{"features": {}}`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.NotErrorIs(t, err, ErrMissingFeatures)

	_, err = imp.Import(context.Background(), []byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestImport_EmptyCollection(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	imp := NewImporter(memstore.New(), notifier)

	stats, err := imp.Import(context.Background(), []byte(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Zero(t, stats.Imported)
	assert.Zero(t, stats.Skipped)
	assert.Equal(t, []int{0}, notifier.calls)
}

func TestImport_DuplicateEncountersLastWins(t *testing.T) {
	t.Parallel()
	store := memstore.New()
	imp := NewImporter(store, nil)

	doc := `{"features":[
	  {"type":"Feature","geometry":{"type":"Point","coordinates":[1,1]},"properties":{"pokemon_id":1,"encounter_id":"dup","disappear_time":1469016000000}},
	  {"type":"Feature","geometry":{"type":"Point","coordinates":[2,2]},"properties":{"pokemon_id":2,"encounter_id":"dup","disappear_time":1469016000000}}
	]}`
	stats, err := imp.Import(context.Background(), []byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Imported)

	p, ok := store.Pokemon(models.EncodeEncounterID("dup"))
	require.True(t, ok)
	assert.Equal(t, 2, p.PokemonID)
}

func TestImport_StoreFailure(t *testing.T) {
	t.Parallel()
	notifier := &recordingNotifier{}
	imp := NewImporter(failingStore{}, notifier)

	stats, err := imp.Import(context.Background(), []byte(sampleCollection))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotNil(t, stats)
	assert.Empty(t, notifier.calls, "failed imports are not broadcast")
}

func TestEncounterLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`"abc"`, "abc", false},
		{`123`, "123", false},
		{`-5`, "-5", false},
		{`18446744073709551615`, "18446744073709551615", false},
		{`1.5`, "", true},
		{`""`, "", true},
		{`null`, "", true},
		{`true`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := encounterLiteral([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
