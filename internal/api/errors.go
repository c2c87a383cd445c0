// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/redirect"
)

// respondStoreError maps an entity store failure to a response. The client
// sees a generic message; the cause goes to the log with the request id.
func respondStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		logging.CtxWarn(r.Context()).Str("operation", op).Msg("Client went away during store query")
		return
	}

	logging.CtxErr(r.Context(), err).Str("operation", op).Msg("Entity store operation failed")
	if errors.Is(err, context.DeadlineExceeded) {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgStoreUnavailable, nil)
		return
	}
	respondError(w, http.StatusInternalServerError, ErrCodeDatabaseError, msgStoreUnavailable, nil)
}

// redirectStatus maps a redirect.Queue.Submit error to a status and text body.
func redirectStatus(err error) (int, string) {
	var verr *redirect.ValidationError
	switch {
	case err == nil:
		return http.StatusOK, msgOK
	case errors.Is(err, redirect.ErrFeatureDisabled):
		return http.StatusForbidden, msgLocationFixed
	case errors.As(err, &verr):
		return http.StatusBadRequest, msgBadParameters
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
