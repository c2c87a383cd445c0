// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Command spawnctl is the operator CLI for a running Spawnwatch server.
//
//	spawnctl loc
//	spawnctl next-loc --lat 40.7580 --lon -73.9855
//	spawnctl import sightings.geojson
//	spawnctl import sightings.geojson --db /data/spawnwatch.duckdb
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/tomtom215/spawnwatch/internal/logging"
)

func main() {
	logging.Init(logging.Config{Level: "warn", Format: "console", Service: "spawnctl", Output: os.Stderr})

	client := &http.Client{Timeout: 30 * time.Second}
	if err := newRootCmd(os.Stdout, client).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
