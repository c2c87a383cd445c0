// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/spawnwatch/config.yaml",
	"/etc/spawnwatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Location: LocationConfig{
			Latitude:      0.0,
			Longitude:     0.0,
			FixedLocation: false,
			Locale:        "en",
		},
		Database: DatabaseConfig{
			Path:               "/data/spawnwatch.duckdb",
			MaxMemory:          "1GB",
			Threads:            0,
			CheckpointInterval: 5 * time.Minute,
		},
		Store: StoreConfig{
			Backend: StoreBackendDuckDB,
		},
		Query: QueryConfig{
			RecentLookback:  15 * time.Minute,
			ScannedLookback: 15 * time.Minute,
		},
		Redirect: RedirectConfig{
			Capacity: 8,
		},
		Security: SecurityConfig{
			RateLimitReqs:     60,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		NATS: NATSConfig{
			Enabled:           false,
			URL:               "nats://127.0.0.1:4222",
			EmbeddedServer:    true,
			StoreDir:          "/data/nats/jetstream",
			MaxMemory:         256 << 20, // 256MB
			MaxStore:          1 << 30,   // 1GB
			NextLocationTopic: "scan.next_location",
			EntitiesTopic:     "scan.entities",
			QueueGroup:        "spawnwatch",
			SubscribersCount:  2,
			MaxReconnects:     -1,
			ReconnectWait:     2 * time.Second,
			CloseTimeout:      10 * time.Second,
		},
		ScanClient: ScanClientConfig{
			URL:               "",
			Timeout:           10 * time.Second,
			Steps:             8,
			StepDistance:      70,
			RequestsPerSecond: 5,
			CacheTTL:          30 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	return LoadFromPath(findConfigFile())
}

// LoadFromPath is LoadWithKoanf with an explicit config file. An empty path
// skips the file layer.
func LoadFromPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// ORIGIN_LATITUDE -> location.latitude, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Only variables listed in the mapping table are considered.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - ORIGIN_LATITUDE -> location.latitude
//   - FIXED_LOCATION -> location.fixed_location
//   - DUCKDB_PATH -> database.path
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Location mappings
		"origin_latitude":  "location.latitude",
		"origin_longitude": "location.longitude",
		"fixed_location":   "location.fixed_location",
		"gmaps_key":        "location.gmaps_key",
		"locale":           "location.locale",

		// Database and store mappings
		"duckdb_path":                "database.path",
		"duckdb_max_memory":          "database.max_memory",
		"duckdb_threads":             "database.threads",
		"duckdb_checkpoint_interval": "database.checkpoint_interval",
		"store_backend":              "store.backend",

		// Query windows
		"recent_lookback":  "query.recent_lookback",
		"scanned_lookback": "query.scanned_lookback",

		// Redirect queue
		"redirect_capacity": "redirect.capacity",

		// Security mappings
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",
		"cors_origins":        "security.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// NATS mappings
		"nats_enabled":             "nats.enabled",
		"nats_url":                 "nats.url",
		"nats_embedded":            "nats.embedded_server",
		"nats_store_dir":           "nats.store_dir",
		"nats_max_memory":          "nats.max_memory",
		"nats_max_store":           "nats.max_store",
		"nats_next_location_topic": "nats.next_location_topic",
		"nats_entities_topic":      "nats.entities_topic",
		"nats_queue_group":         "nats.queue_group",
		"nats_subscribers":         "nats.subscribers_count",

		// Scan client mappings
		"scan_client_url":           "scan_client.url",
		"scan_client_timeout":       "scan_client.timeout",
		"scan_client_steps":         "scan_client.steps",
		"scan_client_step_distance": "scan_client.step_distance",
		"scan_client_rps":           "scan_client.requests_per_second",
		"scan_client_cache_ttl":     "scan_client.cache_ttl",

		// Pokemon names
		"pokemon_names_file": "names.locale_file",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables never leak into config.
	return ""
}
