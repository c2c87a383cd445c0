// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"net/http"

	"github.com/tomtom215/spawnwatch/internal/logging"
)

// LocationResponse is the /loc body: the configured scan origin.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Loc returns the configured scan origin.
//
// @Summary Scan origin
// @Tags Location
// @Produce json
// @Success 200 {object} LocationResponse
// @Router /loc [get]
func (h *Handler) Loc(w http.ResponseWriter, r *http.Request) {
	o := h.origin()
	respondJSON(w, http.StatusOK, LocationResponse{Lat: o.Lat, Lng: o.Lon})
}

// NextLoc queues a scan redirect. Coordinates come from the query string or,
// taking precedence, from a form body.
//
// Responses are plain text: 200 "ok", 400 "bad parameters", or 403 when the
// origin is fixed by configuration.
//
// @Summary Queue a scan redirect
// @Description Queues the next scan location. The queue is bounded and drops its oldest entry when full.
// @Tags Location
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param lat query number false "Latitude (query form)"
// @Param lon query number false "Longitude (query form)"
// @Param lat formData number false "Latitude, wins over the query value"
// @Param lon formData number false "Longitude, wins over the query value"
// @Success 200 {string} string "ok"
// @Failure 400 {string} string "bad parameters"
// @Failure 403 {string} string "Location searching is turned off"
// @Failure 429 {object} APIResponse "Rate limit exceeded"
// @Router /next_loc [get]
// @Router /next_loc [post]
func (h *Handler) NextLoc(w http.ResponseWriter, r *http.Request) {
	lat, lon := parseNextLocation(r)

	err := h.queue.Submit(lat, lon)
	status, body := redirectStatus(err)
	if err != nil {
		logging.CtxInfo(r.Context()).Err(err).Int("status", status).Msg("Redirect rejected")
		respondText(w, status, body)
		return
	}

	logging.CtxInfo(r.Context()).
		Float64("lat", *lat).
		Float64("lon", *lon).
		Int("pending", h.queue.Len()).
		Msg("Redirect queued")

	if h.wsHub != nil {
		h.wsHub.BroadcastLocationChanged(*lat, *lon)
	}
	respondText(w, status, body)
}
