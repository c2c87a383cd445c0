// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/spawnwatch/internal/cache"
	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/geo"
	spawnimport "github.com/tomtom215/spawnwatch/internal/import"
	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/models"
	"github.com/tomtom215/spawnwatch/internal/names"
	"github.com/tomtom215/spawnwatch/internal/redirect"
	"github.com/tomtom215/spawnwatch/internal/scanclient"
	ws "github.com/tomtom215/spawnwatch/internal/websocket"
)

// EntityStore is the query and write surface the handlers need. Both the
// DuckDB store and the in-memory R-tree store implement it.
type EntityStore interface {
	GetActivePokemon(ctx context.Context, bbox models.BoundingBox) ([]models.Pokemon, error)
	GetActivePokemonByID(ctx context.Context, ids []int, bbox models.BoundingBox) ([]models.Pokemon, error)
	GetRecentPokemon(ctx context.Context, lookback time.Duration, bbox models.BoundingBox) ([]models.Pokemon, error)
	GetPokestops(ctx context.Context, bbox models.BoundingBox) ([]models.Pokestop, error)
	GetGyms(ctx context.Context, bbox models.BoundingBox) ([]models.Gym, error)
	GetRecentScanned(ctx context.Context, lookback time.Duration, bbox models.BoundingBox) ([]models.ScannedLocation, error)
	BulkUpsertPokemon(ctx context.Context, batch []models.Pokemon) (int, error)
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, websocket upgrade (this file)
//   - handlers_helpers.go: shared response and parameter helpers
//   - handlers_map.go: map page and /raw_data
//   - handlers_location.go: /loc and /next_loc
//   - handlers_mobile.go: ranked mobile list
//   - handlers_import.go: GeoJSON import
//   - handlers_pokevision.go: preview scans
//   - handlers_health.go: health endpoints
type Handler struct {
	store     EntityStore
	config    *config.Config
	queue     *redirect.Queue
	names     *names.Resolver
	importer  *spawnimport.Importer
	previewer *scanclient.Previewer
	previews  *cache.TTL[[]models.Sighting]
	wsHub     *ws.Hub
	startTime time.Time

	// nowFunc is replaceable in tests
	nowFunc func() time.Time
}

// NewHandler creates a new API handler.
//
// Dependencies:
//   - store: entity store backend
//   - queue: location redirect queue shared with the scanner relay
//   - cfg: application configuration
//   - wsHub: websocket hub for live updates (optional)
//
// Pokemon names and preview scanning are attached with SetNames and
// SetPreviewer.
//
// Example:
//
//	handler := api.NewHandler(db, queue, cfg, wsHub)
//	router := api.NewRouter(handler, cfg)
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(store EntityStore, queue *redirect.Queue, cfg *config.Config, wsHub *ws.Hub) *Handler {
	var notifier spawnimport.Notifier
	if wsHub != nil {
		notifier = wsHub
	}

	return &Handler{
		store:     store,
		config:    cfg,
		queue:     queue,
		names:     names.New(nil),
		importer:  spawnimport.NewImporter(store, notifier),
		wsHub:     wsHub,
		startTime: time.Now(),
		nowFunc:   time.Now,
	}
}

// SetNames attaches the species name resolver.
func (h *Handler) SetNames(r *names.Resolver) {
	if r != nil {
		h.names = r
	}
}

// SetPreviewer enables /pokevision. Results are cached per origin for
// cfg.ScanClient.CacheTTL when it is positive.
func (h *Handler) SetPreviewer(p *scanclient.Previewer) {
	h.previewer = p
	if p != nil && h.config != nil && h.config.ScanClient.CacheTTL > 0 {
		h.previews = cache.NewTTL[[]models.Sighting](h.config.ScanClient.CacheTTL, 256)
	}
}

// origin returns the configured scan origin.
func (h *Handler) origin() geo.Point {
	if h.config == nil {
		return geo.Point{}
	}
	return geo.Point{Lat: h.config.Location.Latitude, Lon: h.config.Location.Longitude}
}

// WebSocket upgrades the connection and registers the client with the hub.
//
// @Summary Live map updates
// @Description Upgrades to a websocket that pushes entities_updated and location_changed messages.
// @Tags Map
// @Success 101 {string} string "Switching Protocols"
// @Failure 503 {object} APIResponse "Hub not running"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins. Browsers
// always send Origin, so a missing header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
