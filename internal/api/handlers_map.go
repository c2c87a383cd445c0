// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// mapPage is the data of the map template.
type mapPage struct {
	Lat      float64
	Lng      float64
	GMapsKey string
	Lang     string
	IsFixed  string // CSS display value of the fixed-location notice
}

// Index renders the map page centred on the configured origin.
//
// @Summary Map page
// @Description HTML map shell centred on the scan origin. Clicking the map posts to /next_loc unless the origin is fixed.
// @Tags Map
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page := mapPage{IsFixed: "none"}
	if h.config != nil {
		page.Lat = h.config.Location.Latitude
		page.Lng = h.config.Location.Longitude
		page.GMapsKey = h.config.Location.GMapsKey
		page.Lang = h.config.Location.Locale
		if h.config.Location.FixedLocation {
			page.IsFixed = "inline"
		}
	}
	renderHTML(w, r, mapTemplate, page)
}

// RawDataResponse is the /raw_data body. A group that was not requested is
// omitted; a requested group with no matches is an empty array.
type RawDataResponse struct {
	Pokemons  *[]models.Pokemon         `json:"pokemons,omitempty"`
	Pokestops *[]models.Pokestop        `json:"pokestops,omitempty"`
	Gyms      *[]models.Gym             `json:"gyms,omitempty"`
	Scanned   *[]models.ScannedLocation `json:"scanned,omitempty"`
}

// RawData returns the requested entity groups inside an optional bounding
// box. Keys for groups that were not requested are omitted.
//
// @Summary Entities in a bounding box
// @Description Active pokemon, pokestops, gyms and recently scanned cells. Each bound is optional and a malformed bound is ignored. Times are epoch milliseconds (UTC).
// @Tags Map
// @Produce json
// @Param swLat query number false "South-west latitude"
// @Param swLng query number false "South-west longitude"
// @Param neLat query number false "North-east latitude"
// @Param neLng query number false "North-east longitude"
// @Param pokemon query bool false "Include pokemon" default(true)
// @Param ids query string false "Comma separated pokemon ids"
// @Param pokestops query bool false "Include pokestops" default(false)
// @Param gyms query bool false "Include gyms" default(true)
// @Param scanned query bool false "Include scanned locations" default(true)
// @Param recent query bool false "Include pokemon that disappeared within the recent lookback" default(false)
// @Success 200 {object} RawDataResponse
// @Failure 400 {string} string "bad parameters"
// @Failure 500 {object} APIResponse "Store failure"
// @Router /raw_data [get]
func (h *Handler) RawData(w http.ResponseWriter, r *http.Request) {
	req, err := parseRawDataRequest(r)
	if err != nil {
		logging.CtxInfo(r.Context()).Err(err).Msg("Rejected raw_data request")
		respondText(w, http.StatusBadRequest, msgBadParameters)
		return
	}

	ctx := r.Context()
	var resp RawDataResponse

	if req.Pokemon {
		pokemons, err := h.queryPokemon(ctx, req)
		if err != nil {
			respondStoreError(w, r, "raw_data pokemon", err)
			return
		}
		pokemons = withNames(pokemons, h.names)
		resp.Pokemons = &pokemons
	}

	if req.Pokestops {
		stops, err := h.store.GetPokestops(ctx, req.BBox)
		if err != nil {
			respondStoreError(w, r, "raw_data pokestops", err)
			return
		}
		resp.Pokestops = &stops
	}

	if req.Gyms {
		gyms, err := h.store.GetGyms(ctx, req.BBox)
		if err != nil {
			respondStoreError(w, r, "raw_data gyms", err)
			return
		}
		resp.Gyms = &gyms
	}

	if req.Scanned {
		scanned, err := h.store.GetRecentScanned(ctx, h.scannedLookback(), req.BBox)
		if err != nil {
			respondStoreError(w, r, "raw_data scanned", err)
			return
		}
		resp.Scanned = &scanned
	}

	respondJSON(w, http.StatusOK, resp)
}

// queryPokemon picks the active, by-species or recent query for req.
func (h *Handler) queryPokemon(ctx context.Context, req RawDataRequest) ([]models.Pokemon, error) {
	if req.Recent {
		pokemons, err := h.store.GetRecentPokemon(ctx, h.recentLookback(), req.BBox)
		if err != nil || len(req.IDs) == 0 {
			return pokemons, err
		}
		return slices.DeleteFunc(pokemons, func(p models.Pokemon) bool {
			return !slices.Contains(req.IDs, p.PokemonID)
		}), nil
	}
	if len(req.IDs) > 0 {
		return h.store.GetActivePokemonByID(ctx, req.IDs, req.BBox)
	}
	return h.store.GetActivePokemon(ctx, req.BBox)
}
