// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/spawnwatch/docs" // generated swagger docs
	"github.com/tomtom215/spawnwatch/internal/api"
	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/database"
	"github.com/tomtom215/spawnwatch/internal/eventprocessor"
	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/memstore"
	"github.com/tomtom215/spawnwatch/internal/names"
	"github.com/tomtom215/spawnwatch/internal/redirect"
	"github.com/tomtom215/spawnwatch/internal/scanclient"
	"github.com/tomtom215/spawnwatch/internal/supervisor"
	"github.com/tomtom215/spawnwatch/internal/supervisor/services"
	ws "github.com/tomtom215/spawnwatch/internal/websocket"
)

// entityStore is what both store backends provide.
type entityStore interface {
	api.EntityStore
	eventprocessor.EntityWriter
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("store", cfg.Store.Backend).
		Float64("origin_lat", cfg.Location.Latitude).
		Float64("origin_lng", cfg.Location.Longitude).
		Bool("fixed_location", cfg.Location.FixedLocation).
		Bool("nats", cfg.NATS.Enabled).
		Msg("Starting Spawnwatch")

	store, db, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open entity store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	resolver, err := names.Load(cfg.Names.LocaleFile)
	if err != nil {
		// Names are cosmetic; pokemon fall back to "#<id>".
		logging.Warn().Err(err).Msg("Failed to load pokemon names")
		resolver = names.New(nil)
	}

	if cfg.Location.FixedLocation {
		logging.Warn().Msg("Fixed location mode: /next_loc requests will be rejected")
	}
	queue := redirect.New(cfg.Redirect.Capacity, cfg.Location.FixedLocation)

	wsHub := ws.NewHub()

	handler := api.NewHandler(store, queue, cfg, wsHub)
	handler.SetNames(resolver)
	if previewer := newPreviewer(cfg); previewer != nil {
		handler.SetPreviewer(previewer)
	}

	router := api.NewRouter(handler, cfg)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if db != nil && cfg.Database.CheckpointInterval > 0 {
		tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval))
	}
	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	AddNATSToSupervisor(tree, NewNATSComponents(cfg, queue, store, wsHub))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Spawnwatch stopped gracefully")
}

// openStore opens the configured backend. db is non-nil only for DuckDB.
func openStore(cfg *config.Config) (entityStore, *database.DB, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		logging.Info().Msg("Using in-memory entity store; data is lost on restart")
		return memstore.New(), nil, nil
	case config.StoreBackendDuckDB, "":
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		logging.Info().Str("path", db.GetDatabasePath()).Msg("DuckDB store opened")
		return db, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// newPreviewer returns nil when no scan service is configured, which leaves
// /pokevision answering 503.
func newPreviewer(cfg *config.Config) *scanclient.Previewer {
	if cfg.ScanClient.URL == "" {
		logging.Info().Msg("Preview scans disabled (SCAN_CLIENT_URL not set)")
		return nil
	}
	client, err := scanclient.NewHTTPClient(&cfg.ScanClient)
	if err != nil {
		logging.Warn().Err(err).Msg("Preview scans disabled")
		return nil
	}
	breaker := scanclient.NewBreakerClient(client, scanclient.DefaultBreakerSettings())
	return scanclient.NewPreviewer(breaker, &cfg.ScanClient)
}
