// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"net/http"

	"github.com/tomtom215/spawnwatch/internal/models"
)

// mobilePage is the data of the mobile template.
type mobilePage struct {
	OriginLat float64
	OriginLng float64
	Pokemon   []RankedPokemon
}

// MobileResponse is the /mobile.json body.
type MobileResponse struct {
	OriginLat float64         `json:"origin_lat"`
	OriginLng float64         `json:"origin_lng"`
	Pokemon   []RankedPokemon `json:"pokemon"`
}

// rankedNearby parses the origin and ranks every active pokemon from it.
// It writes the error response itself and reports whether to continue.
func (h *Handler) rankedNearby(w http.ResponseWriter, r *http.Request) (OriginRequest, []RankedPokemon, bool) {
	req, err := parseOriginRequest(r, h.origin())
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidationFailed, msgBadParameters, nil)
		return req, nil, false
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &APIResponse{Status: "error", Error: apiErr})
		return req, nil, false
	}

	pokemons, err := h.store.GetActivePokemon(r.Context(), models.BoundingBox{})
	if err != nil {
		respondStoreError(w, r, "mobile", err)
		return req, nil, false
	}
	return req, Rank(req.Point(), pokemons, h.nowFunc(), h.names), true
}

// Mobile renders active pokemon as an HTML list, nearest first.
//
// @Summary Nearby pokemon page
// @Tags Mobile
// @Produce html
// @Param lat query number false "Origin latitude, defaults to the scan origin"
// @Param lon query number false "Origin longitude, defaults to the scan origin"
// @Success 200 {string} string "HTML page"
// @Failure 400 {object} APIResponse "Invalid origin"
// @Failure 500 {object} APIResponse "Store failure"
// @Router /mobile [get]
func (h *Handler) Mobile(w http.ResponseWriter, r *http.Request) {
	req, ranked, ok := h.rankedNearby(w, r)
	if !ok {
		return
	}
	renderHTML(w, r, mobileTemplate, mobilePage{
		OriginLat: req.Latitude,
		OriginLng: req.Longitude,
		Pokemon:   ranked,
	})
}

// MobileJSON returns the Mobile list as JSON.
//
// @Summary Nearby pokemon
// @Description Active pokemon with compass direction, distance in meters and time left, sorted nearest first.
// @Tags Mobile
// @Produce json
// @Param lat query number false "Origin latitude, defaults to the scan origin"
// @Param lon query number false "Origin longitude, defaults to the scan origin"
// @Success 200 {object} MobileResponse
// @Failure 400 {object} APIResponse "Invalid origin"
// @Failure 500 {object} APIResponse "Store failure"
// @Router /mobile.json [get]
func (h *Handler) MobileJSON(w http.ResponseWriter, r *http.Request) {
	req, ranked, ok := h.rankedNearby(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, MobileResponse{
		OriginLat: req.Latitude,
		OriginLng: req.Longitude,
		Pokemon:   ranked,
	})
}
