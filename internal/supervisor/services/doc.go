// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package services adapts spawnwatch components to suture.Service.
//
// Each adapter depends on a small interface rather than the concrete type,
// so this package imports neither the api, websocket nor database packages:
//
//   - HTTPServerService: ListenAndServe/Shutdown (*http.Server)
//   - WebSocketHubService: RunWithContext (*websocket.Hub)
//   - NATSComponentsService: Start/Shutdown/IsRunning (cmd/server NATSComponents)
//   - CheckpointService: Checkpoint (*database.DB)
//
// All Serve methods return ctx.Err() on a requested shutdown and a wrapped
// error on failure, which suture answers with a restart.
package services
