// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/memstore"
	"github.com/tomtom215/spawnwatch/internal/models"
	"github.com/tomtom215/spawnwatch/internal/names"
	"github.com/tomtom215/spawnwatch/internal/redirect"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// testConfig is centred on a fixed origin with rate limiting off.
func testConfig() *config.Config {
	return &config.Config{
		Location: config.LocationConfig{
			Latitude:  40.7580,
			Longitude: -73.9855,
			GMapsKey:  "test-key",
			Locale:    "en",
		},
		Store: config.StoreConfig{Backend: config.StoreBackendMemory},
		Query: config.QueryConfig{
			RecentLookback:  15 * time.Minute,
			ScannedLookback: 15 * time.Minute,
		},
		Redirect: config.RedirectConfig{Capacity: 4},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		ScanClient: config.ScanClientConfig{
			Steps:        1,
			StepDistance: 70,
			CacheTTL:     time.Minute,
		},
	}
}

type testEnv struct {
	handler *Handler
	store   *memstore.Store
	queue   *redirect.Queue
	now     time.Time
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	store := memstore.New()
	t.Cleanup(func() { _ = store.Close() })

	queue := redirect.New(cfg.Redirect.Capacity, cfg.Location.FixedLocation)
	h := NewHandler(store, queue, cfg, nil)
	h.SetNames(names.New(map[int]string{16: "Pidgey", 19: "Rattata", 25: "Pikachu"}))

	return &testEnv{handler: h, store: store, queue: queue, now: time.Now()}
}

func (e *testEnv) seedPokemon(t *testing.T, pokemons ...models.Pokemon) {
	t.Helper()
	_, err := e.store.BulkUpsertPokemon(context.Background(), pokemons)
	require.NoError(t, err)
}

func pokemonAt(id string, species int, lat, lon float64, disappear time.Time) models.Pokemon {
	return models.Pokemon{
		EncounterID:   id,
		PokemonID:     species,
		Latitude:      lat,
		Longitude:     lon,
		DisappearTime: models.NewTimestamp(disappear),
	}
}

// serve runs a request through the full router.
func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewRouter(e.handler, e.handler.config).SetupChi().ServeHTTP(rec, req)
	return rec
}

// failingStore fails every call with err.
type failingStore struct {
	EntityStore
	err error
}

func (f failingStore) GetActivePokemon(context.Context, models.BoundingBox) ([]models.Pokemon, error) {
	return nil, f.err
}

func (f failingStore) Ping(context.Context) error { return f.err }

func (f failingStore) BulkUpsertPokemon(context.Context, []models.Pokemon) (int, error) {
	return 0, f.err
}
