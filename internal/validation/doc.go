// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package validation checks decoded HTTP request structs with go-playground
validator v10.

A single validator instance is shared by the process; it caches struct
metadata, so building one per request would throw that work away.

Field names in messages come from the struct's `query` tag, so a failure on

	type MobileRequest struct {
	    Latitude float64 `query:"lat" validate:"latitude"`
	}

reads "lat must be a valid latitude (-90 to 90)".

Usage:

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
	    return
	}
*/
package validation
