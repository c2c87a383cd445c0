// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// testDBSemaphore limits concurrent database creation to prevent resource exhaustion in CI.
// The semaphore is held for the entire test so only one DuckDB instance is active at a time.
var testDBSemaphore = make(chan struct{}, 1)

var testNow = time.Date(2016, 7, 20, 12, 0, 0, 0, time.UTC)

// setupTestDB creates a new in-memory test database with a fixed clock.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
		Threads:   2,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	db.nowFunc = func() time.Time { return testNow }

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return db
}

func ts(t time.Time) models.Timestamp { return models.NewTimestamp(t) }

func tsPtr(t time.Time) *models.Timestamp {
	v := models.NewTimestamp(t)
	return &v
}

func testPokemon(id string, species int, lat, lon float64, disappear time.Time) models.Pokemon {
	return models.Pokemon{
		EncounterID:   id,
		PokemonID:     species,
		Latitude:      lat,
		Longitude:     lon,
		DisappearTime: ts(disappear),
	}
}

func TestNew_SchemaCreated(t *testing.T) {
	db := setupTestDB(t)

	counts, err := db.GetRecordCounts(context.Background())
	if err != nil {
		t.Fatalf("GetRecordCounts failed: %v", err)
	}
	for _, kind := range []models.Kind{models.KindPokemon, models.KindPokestop, models.KindGym, models.KindScannedLocation} {
		if n, ok := counts[kind]; !ok || n != 0 {
			t.Errorf("counts[%s] = %d (present=%v), want 0", kind, n, ok)
		}
	}
	if db.GetDatabasePath() != ":memory:" {
		t.Errorf("GetDatabasePath() = %q", db.GetDatabasePath())
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestGetActivePokemon(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.BulkUpsertPokemon(ctx, []models.Pokemon{
		testPokemon("a", 16, 10.5, 20.5, testNow.Add(5*time.Minute)),
		testPokemon("b", 19, 10.5, 20.5, testNow.Add(-5*time.Minute)),
		testPokemon("c", 16, 30, 40, testNow.Add(5*time.Minute)),
		testPokemon("edge", 16, 10, 20, testNow.Add(5*time.Minute)),
	})
	if err != nil {
		t.Fatalf("BulkUpsertPokemon failed: %v", err)
	}

	tests := []struct {
		name string
		bbox models.BoundingBox
		want int
	}{
		{"no box", models.BoundingBox{}, 3},
		{"full box includes edge", models.NewBoundingBox(10, 20, 11, 21), 2},
		{"partial box", models.ParseBoundingBox("", "", "20", ""), 2},
		{"inverted box", models.NewBoundingBox(11, 20, 10, 21), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.GetActivePokemon(ctx, tt.bbox)
			if err != nil {
				t.Fatalf("GetActivePokemon failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d pokemon, want %d", len(got), tt.want)
			}
			for _, p := range got {
				if !p.DisappearTime.After(testNow) {
					t.Errorf("expired pokemon %s returned", p.EncounterID)
				}
			}
		})
	}
}

func TestGetActivePokemonByID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	later := testNow.Add(time.Hour)

	_, err := db.BulkUpsertPokemon(ctx, []models.Pokemon{
		testPokemon("a", 16, 1, 1, later),
		testPokemon("b", 19, 1, 1, later),
		testPokemon("c", 25, 1, 1, later),
	})
	if err != nil {
		t.Fatalf("BulkUpsertPokemon failed: %v", err)
	}

	got, err := db.GetActivePokemonByID(ctx, []int{16, 25}, models.BoundingBox{})
	if err != nil {
		t.Fatalf("GetActivePokemonByID failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d pokemon, want 2", len(got))
	}
	for _, p := range got {
		if p.PokemonID != 16 && p.PokemonID != 25 {
			t.Errorf("unexpected species %d", p.PokemonID)
		}
	}
}

func TestGetRecentPokemon(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.BulkUpsertPokemon(ctx, []models.Pokemon{
		testPokemon("recent", 1, 1, 1, testNow.Add(-5*time.Minute)),
		testPokemon("old", 1, 1, 1, testNow.Add(-30*time.Minute)),
	})
	if err != nil {
		t.Fatalf("BulkUpsertPokemon failed: %v", err)
	}

	got, err := db.GetRecentPokemon(ctx, 15*time.Minute, models.BoundingBox{})
	if err != nil {
		t.Fatalf("GetRecentPokemon failed: %v", err)
	}
	if len(got) != 1 || got[0].EncounterID != "recent" {
		t.Errorf("GetRecentPokemon = %+v, want only 'recent'", got)
	}
}

func TestPokemon_TimestampsRoundTripAsUTCMillis(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	plus2 := time.FixedZone("UTC+2", 2*60*60)
	disappear := time.Date(2016, 7, 20, 14, 30, 0, 500*int(time.Millisecond), plus2)
	p := testPokemon("tz", 1, 1, 1, disappear)
	p.LastModified = tsPtr(disappear.Add(-10 * time.Minute))
	p.SpawnpointID = "sp1"

	if _, err := db.BulkUpsertPokemon(ctx, []models.Pokemon{p}); err != nil {
		t.Fatalf("BulkUpsertPokemon failed: %v", err)
	}

	got, err := db.GetActivePokemon(ctx, models.BoundingBox{})
	if err != nil || len(got) != 1 {
		t.Fatalf("GetActivePokemon = %v, %v", got, err)
	}
	if got[0].DisappearTime.Millis() != disappear.UnixMilli() {
		t.Errorf("DisappearTime = %d, want %d", got[0].DisappearTime.Millis(), disappear.UnixMilli())
	}
	if got[0].DisappearTime.Location() != time.UTC {
		t.Errorf("DisappearTime location = %v, want UTC", got[0].DisappearTime.Location())
	}
	if got[0].LastModified == nil || got[0].SpawnpointID != "sp1" {
		t.Errorf("optional fields lost: %+v", got[0])
	}
}

func TestBulkUpsertGyms_DedupAndWholeRecordReplace(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	n, err := db.BulkUpsertGyms(ctx, []models.Gym{
		{GymID: "g1", TeamID: 1, GymPoints: 100, Enabled: true, Latitude: 1, Longitude: 1, LastModified: ts(testNow)},
		{GymID: "g1", TeamID: 2, GymPoints: 500, Enabled: true, Latitude: 1, Longitude: 1, LastModified: ts(testNow)},
	})
	if err != nil {
		t.Fatalf("BulkUpsertGyms failed: %v", err)
	}
	if n != 1 {
		t.Errorf("written = %d, want 1 after dedup", n)
	}

	gyms, err := db.GetGyms(ctx, models.BoundingBox{})
	if err != nil || len(gyms) != 1 {
		t.Fatalf("GetGyms = %v, %v", gyms, err)
	}
	if gyms[0].TeamID != 2 || gyms[0].GymPoints != 500 {
		t.Errorf("last occurrence should win, got %+v", gyms[0])
	}

	// a later upsert replaces every column, it does not merge
	if _, err := db.BulkUpsertGyms(ctx, []models.Gym{{GymID: "g1", TeamID: 3, Latitude: 2, Longitude: 2}}); err != nil {
		t.Fatalf("BulkUpsertGyms failed: %v", err)
	}
	gyms, _ = db.GetGyms(ctx, models.BoundingBox{})
	if len(gyms) != 1 {
		t.Fatalf("expected one gym, got %d", len(gyms))
	}
	g := gyms[0]
	if g.TeamID != 3 || g.GymPoints != 0 || g.Enabled || g.Latitude != 2 || !g.LastModified.IsZero() {
		t.Errorf("expected full replacement, got %+v", g)
	}
}

func TestBulkUpsertPokestops_NullableFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	active := 129
	stops := []models.Pokestop{
		{PokestopID: "lured", Enabled: true, Latitude: 1, Longitude: 1, LastModified: ts(testNow),
			LureExpiration: tsPtr(testNow.Add(30 * time.Minute)), ActivePokemonID: &active},
		{PokestopID: "plain", Enabled: true, Latitude: 2, Longitude: 2, LastModified: ts(testNow)},
	}
	if _, err := db.BulkUpsertPokestops(ctx, stops); err != nil {
		t.Fatalf("BulkUpsertPokestops failed: %v", err)
	}

	got, err := db.GetPokestops(ctx, models.BoundingBox{})
	if err != nil {
		t.Fatalf("GetPokestops failed: %v", err)
	}
	byID := map[string]models.Pokestop{}
	for _, s := range got {
		byID[s.PokestopID] = s
	}
	if s := byID["lured"]; s.LureExpiration == nil || s.ActivePokemonID == nil || *s.ActivePokemonID != 129 {
		t.Errorf("lured stop lost fields: %+v", s)
	}
	if s := byID["plain"]; s.LureExpiration != nil || s.ActivePokemonID != nil {
		t.Errorf("plain stop should have nil lure fields: %+v", s)
	}
}

func TestBulkUpsert_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	batch := []models.ScannedLocation{
		models.ScannedLocation{Latitude: 1, Longitude: 1, LastModified: ts(testNow)}.Normalize(),
		models.ScannedLocation{Latitude: 2, Longitude: 2, LastModified: ts(testNow), Band: models.BandPartial}.Normalize(),
	}

	for i := 0; i < 2; i++ {
		if _, err := db.BulkUpsertScannedLocations(ctx, batch); err != nil {
			t.Fatalf("upsert #%d failed: %v", i, err)
		}
	}

	got, err := db.GetRecentScanned(ctx, 15*time.Minute, models.BoundingBox{})
	if err != nil {
		t.Fatalf("GetRecentScanned failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d cells after applying the batch twice, want 2", len(got))
	}
}

func TestGetRecentScanned_CutoffInclusive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.BulkUpsertScannedLocations(ctx, []models.ScannedLocation{
		{ScannedID: "at", Latitude: 1, Longitude: 1, LastModified: ts(testNow.Add(-15 * time.Minute)), Band: models.BandFull},
		{ScannedID: "before", Latitude: 1, Longitude: 1, LastModified: ts(testNow.Add(-16 * time.Minute)), Band: models.BandFull},
	})
	if err != nil {
		t.Fatalf("BulkUpsertScannedLocations failed: %v", err)
	}

	got, err := db.GetRecentScanned(ctx, 15*time.Minute, models.BoundingBox{})
	if err != nil {
		t.Fatalf("GetRecentScanned failed: %v", err)
	}
	if len(got) != 1 || got[0].ScannedID != "at" {
		t.Errorf("GetRecentScanned = %+v, want only 'at'", got)
	}
}

func TestBulkUpsert_EmptyBatch(t *testing.T) {
	db := setupTestDB(t)

	n, err := db.BulkUpsertPokemon(context.Background(), nil)
	if err != nil || n != 0 {
		t.Errorf("BulkUpsertPokemon(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestBulkUpsert_ConcurrentWriters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errCh := make(chan error, 40)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				batch := []models.Pokemon{
					testPokemon(fmt.Sprintf("shared-%d", i%3), w+1, 1, 1, testNow.Add(time.Hour)),
					testPokemon(fmt.Sprintf("own-%d-%d", w, i), w+1, 1, 1, testNow.Add(time.Hour)),
				}
				if _, err := db.BulkUpsertPokemon(ctx, batch); err != nil {
					errCh <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("concurrent upsert failed: %v", err)
	}

	counts, err := db.GetRecordCounts(ctx)
	if err != nil {
		t.Fatalf("GetRecordCounts failed: %v", err)
	}
	if counts[models.KindPokemon] != 3+40 {
		t.Errorf("pokemon rows = %d, want 43", counts[models.KindPokemon])
	}
}

func TestClose_Idempotent(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}

	_, err = db.GetGyms(context.Background(), models.BoundingBox{})
	if !errors.Is(err, ErrStoreClosed) {
		t.Errorf("query after Close = %v, want ErrStoreClosed", err)
	}
	if _, err := db.BulkUpsertGyms(context.Background(), []models.Gym{{GymID: "g"}}); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("upsert after Close = %v, want ErrStoreClosed", err)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err                error
		conflict, internal bool
		connection         bool
	}{
		{errors.New("TransactionContext Error: Transaction conflict: cannot update"), true, false, false},
		{errors.New("INTERNAL Error: something broke"), false, true, false},
		{errors.New("sql: database is closed"), false, false, true},
		{nil, false, false, false},
	}
	for _, tt := range tests {
		if got := isTransactionConflict(tt.err); got != tt.conflict {
			t.Errorf("isTransactionConflict(%v) = %v", tt.err, got)
		}
		if got := isInternalError(tt.err); got != tt.internal {
			t.Errorf("isInternalError(%v) = %v", tt.err, got)
		}
		if got := isConnectionError(tt.err); got != tt.connection {
			t.Errorf("isConnectionError(%v) = %v", tt.err, got)
		}
	}
}
