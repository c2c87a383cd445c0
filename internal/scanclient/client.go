// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package scanclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// maxErrorBodySize limits the response body read for error reporting
const maxErrorBodySize = 64 * 1024

// ErrNotConfigured is returned when no scanner URL is configured.
var ErrNotConfigured = errors.New("scan client not configured")

// Client returns the wild pokemon visible from one location.
type Client interface {
	Scan(ctx context.Context, lat, lon float64) ([]models.WildPokemon, error)
}

// scanResponse is the scanner's reply for one step
type scanResponse struct {
	WildPokemons []models.WildPokemon `json:"wild_pokemons"`
}

// HTTPClient queries an external scanner over HTTP.
//
// Request:  GET <url>?lat=<lat>&lon=<lon>
// Response: {"wild_pokemons":[{"pokemon_id":16,"latitude":..,"longitude":..,
// "last_modified_timestamp_ms":..,"time_till_hidden_ms":..}]}
type HTTPClient struct {
	baseURL *url.URL
	client  *http.Client
}

// NewHTTPClient creates a client for cfg.URL.
func NewHTTPClient(cfg *config.ScanClientConfig) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid scan client URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: u,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Scan implements Client.
func (c *HTTPClient) Scan(ctx context.Context, lat, lon float64) ([]models.WildPokemon, error) {
	u := *c.baseURL
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scan request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("scanner returned status %d: %s", resp.StatusCode, string(body))
	}

	var out scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode scan response: %w", err)
	}
	return out.WildPokemons, nil
}
