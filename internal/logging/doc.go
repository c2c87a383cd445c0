// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package logging provides centralized zerolog-based structured logging for Spawnwatch.
//
// A single global logger is configured once at startup and then used from
// every package through the package-level helpers:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Int("count", n).Msg("Imported pokemon")
//	logging.Ctx(ctx).Warn().Msg("Invalid next location")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// # Adapters
//
// Two adapters let third-party libraries log through the same stream:
//
//   - SlogHandler / NewSlogLogger for suture's sutureslog event hook
//   - WatermillAdapter for the watermill NATS publisher and subscriber
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(), and prefer structured
// fields over formatted messages:
//
//	logging.Info().Float64("lat", lat).Float64("lon", lon).Msg("Changing next location")
package logging
