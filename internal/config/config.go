// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration. It is built once at startup by
// Load and then passed by pointer into every component; nothing mutates it
// afterwards.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Location   LocationConfig   `koanf:"location"`
	Database   DatabaseConfig   `koanf:"database"`
	Store      StoreConfig      `koanf:"store"`
	Query      QueryConfig      `koanf:"query"`
	Redirect   RedirectConfig   `koanf:"redirect"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	NATS       NATSConfig       `koanf:"nats"`
	ScanClient ScanClientConfig `koanf:"scan_client"`
	Names      NamesConfig      `koanf:"names"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LocationConfig holds the scan origin and whether operators may move it.
//
// Environment Variables:
//   - ORIGIN_LATITUDE / ORIGIN_LONGITUDE: scan origin in degrees
//   - FIXED_LOCATION: reject every /next_loc request with 403
//   - GMAPS_KEY: browser map key passed to the map page
type LocationConfig struct {
	Latitude      float64 `koanf:"latitude" validate:"latitude"`
	Longitude     float64 `koanf:"longitude" validate:"longitude"`
	FixedLocation bool    `koanf:"fixed_location"`
	GMapsKey      string  `koanf:"gmaps_key"`
	Locale        string  `koanf:"locale"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads" validate:"min=0"` // 0 = use NumCPU

	// CheckpointInterval is how often the DuckDB WAL is folded into the
	// database file. 0 disables periodic checkpoints.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// Store backends.
const (
	StoreBackendDuckDB = "duckdb"
	StoreBackendMemory = "memory"
)

// StoreConfig selects the entity store implementation.
type StoreConfig struct {
	Backend string `koanf:"backend" validate:"oneof=duckdb memory"`
}

// QueryConfig holds time windows for the non-active query modes.
type QueryConfig struct {
	// RecentLookback is how far past disappearance a pokemon stays visible
	// when a client asks for recent rather than active entities.
	RecentLookback time.Duration `koanf:"recent_lookback"`

	// ScannedLookback is the window for scan coverage cells.
	ScannedLookback time.Duration `koanf:"scanned_lookback"`
}

// RedirectConfig holds the location redirect queue settings.
type RedirectConfig struct {
	// Capacity is the maximum number of pending redirects; the oldest is
	// dropped when a new one arrives at capacity.
	Capacity int `koanf:"capacity" validate:"min=1,max=1024"`
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// NATSConfig holds the scanner relay settings. When enabled, accepted
// redirects are published to NextLocationTopic and entity batches published
// by scanners on EntitiesTopic are upserted into the store.
type NATSConfig struct {
	Enabled bool `koanf:"enabled"`

	// URL is the NATS server connection URL.
	URL string `koanf:"url"`

	// EmbeddedServer runs an in-process NATS server with JetStream.
	// If false, expects external NATS server at URL.
	EmbeddedServer bool   `koanf:"embedded_server"`
	StoreDir       string `koanf:"store_dir"`
	MaxMemory      int64  `koanf:"max_memory"`
	MaxStore       int64  `koanf:"max_store"`

	NextLocationTopic string `koanf:"next_location_topic"`
	EntitiesTopic     string `koanf:"entities_topic"`
	QueueGroup        string `koanf:"queue_group"`
	SubscribersCount  int    `koanf:"subscribers_count"`

	MaxReconnects int           `koanf:"max_reconnects"`
	ReconnectWait time.Duration `koanf:"reconnect_wait"`
	CloseTimeout  time.Duration `koanf:"close_timeout"`
}

// ScanClientConfig configures the on-demand preview scanner behind /pokevision.
// An empty URL disables the endpoint.
type ScanClientConfig struct {
	URL               string        `koanf:"url"`
	Timeout           time.Duration `koanf:"timeout"`
	Steps             int           `koanf:"steps" validate:"min=1,max=20"`
	StepDistance      float64       `koanf:"step_distance" validate:"gt=0"` // meters between hex rings
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	CacheTTL          time.Duration `koanf:"cache_ttl"` // 0 disables preview caching
}

// NamesConfig points at an optional JSON file mapping pokemon ids to names.
type NamesConfig struct {
	LocaleFile string `koanf:"locale_file"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, in that order of increasing priority.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
