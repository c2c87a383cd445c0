// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"sort"
	"time"

	"github.com/tomtom215/spawnwatch/internal/geo"
	"github.com/tomtom215/spawnwatch/internal/models"
	"github.com/tomtom215/spawnwatch/internal/names"
)

// RankedPokemon is one row of the mobile list.
type RankedPokemon struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	CardDir         string           `json:"card_dir"`
	Distance        int              `json:"distance"`
	TimeToDisappear string           `json:"time_to_disappear"`
	DisappearTime   models.Timestamp `json:"disappear_time" swaggertype:"integer" format:"int64"`
	Latitude        float64          `json:"latitude"`
	Longitude       float64          `json:"longitude"`
}

// Rank annotates pokemon with bearing and distance from origin and sorts
// them nearest first. Equal distances keep their input order.
func Rank(origin geo.Point, pokemons []models.Pokemon, now time.Time, resolver *names.Resolver) []RankedPokemon {
	ranked := make([]RankedPokemon, 0, len(pokemons))
	for _, p := range pokemons {
		a := geo.Annotate(origin.Lat, origin.Lon, p.Latitude, p.Longitude)
		name := p.PokemonName
		if name == "" {
			name = resolver.Name(p.PokemonID)
		}
		ranked = append(ranked, RankedPokemon{
			ID:              p.PokemonID,
			Name:            name,
			CardDir:         a.CardDir,
			Distance:        int(a.Distance),
			TimeToDisappear: geo.FormatRemaining(p.DisappearTime.Time, now),
			DisappearTime:   p.DisappearTime,
			Latitude:        p.Latitude,
			Longitude:       p.Longitude,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	return ranked
}

// withNames fills PokemonName from the resolver where it is empty.
func withNames(pokemons []models.Pokemon, resolver *names.Resolver) []models.Pokemon {
	for i := range pokemons {
		if pokemons[i].PokemonName == "" {
			pokemons[i].PokemonName = resolver.Name(pokemons[i].PokemonID)
		}
	}
	return pokemons
}
