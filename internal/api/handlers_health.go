// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/spawnwatch/internal/middleware"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// pingTimeout bounds the store check of the health endpoints.
const pingTimeout = 2 * time.Second

// HealthStatus is the payload of /health.
type HealthStatus struct {
	Status           string  `json:"status"`
	StoreBackend     string  `json:"store_backend"`
	StoreConnected   bool    `json:"store_connected"`
	FixedLocation    bool    `json:"fixed_location"`
	PendingRedirects int     `json:"pending_redirects"`
	DroppedRedirects uint64  `json:"dropped_redirects"`
	WebSocketClients int     `json:"websocket_clients"`
	Uptime           float64 `json:"uptime"`
}

func (h *Handler) pingStore(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return h.store.Ping(ctx)
}

// Health reports store connectivity and redirect queue state.
//
// @Summary Service health
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.store != nil && h.pingStore(r.Context()) == nil

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	health := HealthStatus{
		Status:         status,
		StoreConnected: connected,
		Uptime:         time.Since(h.startTime).Seconds(),
	}
	if h.config != nil {
		health.StoreBackend = h.config.Store.Backend
	}
	if h.queue != nil {
		health.FixedLocation = h.queue.Fixed()
		health.PendingRedirects = h.queue.Len()
		health.DroppedRedirects = h.queue.Dropped()
	}
	if h.wsHub != nil {
		health.WebSocketClients = h.wsHub.GetClientCount()
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   health,
		Metadata: Metadata{
			Timestamp: models.NewTimestamp(time.Now()),
			RequestID: middleware.GetRequestID(r.Context()),
		},
	})
}

// HealthLive is the liveness probe. It never touches dependencies.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe: 503 until the store answers a ping.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.pingStore(r.Context()) != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
