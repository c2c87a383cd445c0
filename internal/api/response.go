// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"github.com/tomtom215/spawnwatch/internal/models"
)

// APIResponse is the envelope of health and error responses. Data endpoints
// keep their bare legacy shapes.
type APIResponse struct {
	// Status is "success" or "error"
	Status string `json:"status"`

	// Data contains the response payload (omitted on error)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (omitted on success)
	Error *APIError `json:"error,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// APIError represents an error response.
type APIError struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains additional error details (optional)
	Details interface{} `json:"details,omitempty"`
}

// Metadata accompanies every APIResponse.
type Metadata struct {
	Timestamp models.Timestamp `json:"timestamp" swaggertype:"integer" format:"int64"`
	RequestID string           `json:"request_id,omitempty"`
}

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeValidationFailed   = "VALIDATION_ERROR"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
)

// Plain text bodies of the legacy endpoints.
const (
	msgBadParameters      = "bad parameters"
	msgLocationFixed      = "Location searching is turned off"
	msgOK                 = "ok"
	msgPayloadTooLarge    = "payload too large"
	msgStoreUnavailable   = "Failed to query entity store"
	msgPreviewUnavailable = "Preview scanning is not configured"
)
