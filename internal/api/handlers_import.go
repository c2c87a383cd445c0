// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"errors"
	"io"
	"net/http"

	spawnimport "github.com/tomtom215/spawnwatch/internal/import"
	"github.com/tomtom215/spawnwatch/internal/logging"
)

// maxImportBytes bounds a GeoJSON upload.
const maxImportBytes = 16 << 20

// Import loads a GeoJSON FeatureCollection of pokemon sightings. Malformed
// features are skipped; the plain text body reports the counts.
//
// @Summary Import GeoJSON sightings
// @Description FeatureCollection of Point features with pokemon_id, encounter_id and disappear_time properties. Malformed features are skipped.
// @Tags Import
// @Accept json
// @Produce plain
// @Param collection body object true "GeoJSON FeatureCollection"
// @Success 200 {string} string "Imported N pokemon (M skipped)"
// @Failure 400 {string} string "bad parameters"
// @Failure 413 {string} string "payload too large"
// @Failure 500 {object} APIResponse "Store failure"
// @Router /import [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondText(w, http.StatusRequestEntityTooLarge, msgPayloadTooLarge)
			return
		}
		logging.CtxInfo(r.Context()).Err(err).Msg("Failed to read import body")
		respondText(w, http.StatusBadRequest, msgBadParameters)
		return
	}

	stats, err := h.importer.Import(r.Context(), body)
	switch {
	case errors.Is(err, spawnimport.ErrMissingFeatures), errors.Is(err, spawnimport.ErrInvalidDocument):
		logging.CtxInfo(r.Context()).Err(err).Msg("Rejected GeoJSON import")
		respondText(w, http.StatusBadRequest, msgBadParameters)
		return
	case err != nil:
		respondStoreError(w, r, "import", err)
		return
	}

	logging.CtxInfo(r.Context()).
		Int("imported", stats.Imported).
		Int("skipped", stats.Skipped).
		Dur("duration", stats.Duration()).
		Msg("GeoJSON import complete")
	respondText(w, http.StatusOK, stats.Summary())
}
