// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package config provides layered configuration loading for Spawnwatch.
//
// Configuration is assembled with Koanf v2 from three layers, each overriding
// the previous one:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/spawnwatch/config.yaml)
//  3. Environment variables, through an explicit mapping table
//
// The result is validated with go-playground/validator struct tags plus a few
// cross-field checks, and is treated as immutable for the life of the process.
//
// # Example config.yaml
//
//	server:
//	  port: 5000
//	location:
//	  latitude: 40.7589
//	  longitude: -73.9851
//	  fixed_location: false
//	redirect:
//	  capacity: 8
//	store:
//	  backend: duckdb
//	nats:
//	  enabled: true
//	  embedded_server: true
//
// # Common Environment Variables
//
//	HTTP_PORT, ORIGIN_LATITUDE, ORIGIN_LONGITUDE, FIXED_LOCATION,
//	DUCKDB_PATH, STORE_BACKEND, REDIRECT_CAPACITY, LOG_LEVEL, NATS_ENABLED,
//	SCAN_CLIENT_URL, POKEMON_NAMES_FILE
package config
