// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"testing"
	"time"

	"github.com/tomtom215/spawnwatch/internal/geo"
	"github.com/tomtom215/spawnwatch/internal/models"
	"github.com/tomtom215/spawnwatch/internal/names"
)

func TestRank(t *testing.T) {
	t.Parallel()

	now := time.Date(2016, 7, 20, 12, 0, 0, 0, time.UTC)
	origin := geo.Point{Lat: 10, Lon: 20}
	resolver := names.New(map[int]string{1: "Bulbasaur"})

	pokemons := []models.Pokemon{
		pokemonAt("south", 1, 9.995, 20, now.Add(90*time.Second)),
		pokemonAt("tie-a", 2, 10, 20.01, now.Add(time.Minute)),
		pokemonAt("tie-b", 3, 10, 20.01, now.Add(time.Minute)),
		pokemonAt("here", 4, 10, 20, now.Add(-time.Minute)),
	}
	pokemons[3].PokemonName = "Named"

	got := Rank(origin, pokemons, now, resolver)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	wantIDs := []int{4, 1, 2, 3}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}

	if got[0].Name != "Named" || got[0].Distance != 0 || got[0].CardDir != "" {
		t.Errorf("origin row = %+v", got[0])
	}
	if got[0].TimeToDisappear != "0 min 0 sec" {
		t.Errorf("expired TimeToDisappear = %q", got[0].TimeToDisappear)
	}
	if got[1].Name != "Bulbasaur" || got[1].CardDir != "S" || got[1].TimeToDisappear != "1 min 30 sec" {
		t.Errorf("south row = %+v", got[1])
	}
	if got[2].Name != "#2" || got[2].CardDir != "E" {
		t.Errorf("unnamed row = %+v", got[2])
	}
}

func TestRank_Empty(t *testing.T) {
	t.Parallel()

	got := Rank(geo.Point{}, nil, time.Now(), nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Rank(nil) = %#v, want empty non-nil slice", got)
	}
}
