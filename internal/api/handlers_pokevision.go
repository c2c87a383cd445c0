// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"net/http"

	"github.com/tomtom215/spawnwatch/internal/cache"
	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// PreviewResponse is the /pokevision body.
type PreviewResponse struct {
	Pokemon []models.Sighting `json:"pokemon"`
}

// Pokevision runs a preview scan around a point through the external scan
// service and returns the sightings it reports. Results are cached per
// origin when a cache TTL is configured.
//
// @Summary Preview scan
// @Tags Mobile
// @Produce json
// @Param lat query number false "Origin latitude, defaults to the scan origin"
// @Param lon query number false "Origin longitude, defaults to the scan origin"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} APIResponse "Invalid origin"
// @Failure 503 {object} APIResponse "Scan service not configured or failing"
// @Router /pokevision [get]
func (h *Handler) Pokevision(w http.ResponseWriter, r *http.Request) {
	if h.previewer == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgPreviewUnavailable, nil)
		return
	}

	req, err := parseOriginRequest(r, h.origin())
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidationFailed, msgBadParameters, nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &APIResponse{Status: "error", Error: apiErr})
		return
	}

	key := cache.GenerateKey("pokevision", req)
	if h.previews != nil {
		if cached, ok := h.previews.Get(key); ok {
			respondJSON(w, http.StatusOK, PreviewResponse{Pokemon: cached})
			return
		}
	}

	sightings, err := h.previewer.Preview(r.Context(), req.Point())
	if err != nil {
		logging.CtxErr(r.Context(), err).
			Float64("lat", req.Latitude).
			Float64("lon", req.Longitude).
			Msg("Preview scan failed")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Preview scan failed", nil)
		return
	}
	if sightings == nil {
		sightings = []models.Sighting{}
	}

	if h.previews != nil {
		h.previews.Set(key, sightings)
	}
	respondJSON(w, http.StatusOK, PreviewResponse{Pokemon: sightings})
}
