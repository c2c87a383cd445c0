// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/spawnwatch/internal/models"
	"github.com/tomtom215/spawnwatch/internal/scanclient"
)

// fakeScanner answers every scan with the same sightings.
type fakeScanner struct {
	mu    sync.Mutex
	calls int
	wild  []models.WildPokemon
}

func (f *fakeScanner) Scan(_ context.Context, lat, lon float64) ([]models.WildPokemon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.wild, nil
}

func (f *fakeScanner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newPreviewEnv(t *testing.T, scanner *fakeScanner) *testEnv {
	t.Helper()
	cfg := testConfig()
	env := newTestEnv(t, cfg)
	env.handler.SetPreviewer(scanclient.NewPreviewer(scanner, &cfg.ScanClient))
	return env
}

func TestPokevision_ReturnsSightings(t *testing.T) {
	t.Parallel()
	scanner := &fakeScanner{wild: []models.WildPokemon{{
		PokemonID:             25,
		Latitude:              40.76,
		Longitude:             -73.98,
		LastModifiedTimestamp: 1469016000000,
		TimeTillHiddenMillis:  600000,
	}}}
	env := newPreviewEnv(t, scanner)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/pokevision?lat=40.76&lon=-73.98", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pokemon []map[string]interface{} `json:"pokemon"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Pokemon, 1)
	assert.EqualValues(t, 25, body.Pokemon[0]["pokemonId"])
	assert.EqualValues(t, 1469016600000, body.Pokemon[0]["disappear_time"])
}

func TestPokevision_EmptyIsArray(t *testing.T) {
	t.Parallel()
	env := newPreviewEnv(t, &fakeScanner{})

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/pokevision", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pokemon": []}`, rec.Body.String())
}

func TestPokevision_CachesPerOrigin(t *testing.T) {
	t.Parallel()
	scanner := &fakeScanner{}
	env := newPreviewEnv(t, scanner)

	for i := 0; i < 3; i++ {
		rec := env.serve(httptest.NewRequest(http.MethodGet, "/pokevision?lat=1&lon=2", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, scanner.callCount())

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/pokevision?lat=3&lon=4", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, scanner.callCount())
}

func TestPokevision_NotConfigured(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, testConfig())

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/pokevision", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), msgPreviewUnavailable)
}

func TestPokevision_InvalidOrigin(t *testing.T) {
	t.Parallel()
	scanner := &fakeScanner{}
	env := newPreviewEnv(t, scanner)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/pokevision?lat=100&lon=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, scanner.callCount())
}
