// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package main

// General API information read by swag. Regenerate with:
//
//	swag init -g cmd/server/docs.go -o docs
//
// @title Spawnwatch API
// @version 1.0
// @description Live spawn map queries, scan redirects and GeoJSON import.
// @description
// @description Times in JSON bodies are epoch milliseconds (UTC). The map routes
// @description answer plain text errors ("bad parameters") so existing map clients
// @description keep working; the newer routes use the APIResponse error envelope.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/spawnwatch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Health probes
//
// @tag.name Map
// @tag.description Map page, entity queries and live updates
//
// @tag.name Location
// @tag.description Scan origin and redirects
//
// @tag.name Mobile
// @tag.description Nearby lists and preview scans
//
// @tag.name Import
// @tag.description Bulk GeoJSON sightings
