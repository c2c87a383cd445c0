// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoc_ReturnsConfiguredOrigin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, testConfig())

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/loc", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got LocationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, LocationResponse{Lat: 40.7580, Lng: -73.9855}, got)
}

func TestNextLoc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		query      string
		form       url.Values
		fixed      bool
		wantStatus int
		wantBody   string
		wantLat    float64
		wantLon    float64
	}{
		{
			name: "query string", method: http.MethodGet, query: "lat=1.5&lon=2.5",
			wantStatus: http.StatusOK, wantBody: "ok", wantLat: 1.5, wantLon: 2.5,
		},
		{
			name: "form body", method: http.MethodPost, form: url.Values{"lat": {"3"}, "lon": {"4"}},
			wantStatus: http.StatusOK, wantBody: "ok", wantLat: 3, wantLon: 4,
		},
		{
			name: "form overrides query per key", method: http.MethodPost, query: "lat=1&lon=2",
			form:       url.Values{"lat": {"9"}},
			wantStatus: http.StatusOK, wantBody: "ok", wantLat: 9, wantLon: 2,
		},
		{
			name: "missing lon", method: http.MethodGet, query: "lat=1",
			wantStatus: http.StatusBadRequest, wantBody: "bad parameters",
		},
		{
			name: "unparseable", method: http.MethodGet, query: "lat=north&lon=2",
			wantStatus: http.StatusBadRequest, wantBody: "bad parameters",
		},
		{
			name: "out of range", method: http.MethodGet, query: "lat=91&lon=2",
			wantStatus: http.StatusBadRequest, wantBody: "bad parameters",
		},
		{
			name: "fixed location", method: http.MethodPost, form: url.Values{"lat": {"1"}, "lon": {"2"}},
			fixed: true, wantStatus: http.StatusForbidden, wantBody: "Location searching is turned off",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			cfg.Location.FixedLocation = tt.fixed
			env := newTestEnv(t, cfg)

			target := "/next_loc"
			if tt.query != "" {
				target += "?" + tt.query
			}
			var req *http.Request
			if tt.form != nil {
				req = httptest.NewRequest(tt.method, target, strings.NewReader(tt.form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			} else {
				req = httptest.NewRequest(tt.method, target, nil)
			}

			rec := env.serve(req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())

			loc, ok := env.queue.Consume()
			if tt.wantStatus != http.StatusOK {
				assert.False(t, ok, "rejected redirect must not be queued")
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantLat, loc.Latitude)
			assert.Equal(t, tt.wantLon, loc.Longitude)
		})
	}
}

func TestNextLoc_QueueKeepsNewest(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, testConfig())

	for _, lat := range []string{"1", "2", "3", "4", "5", "6"} {
		rec := env.serve(httptest.NewRequest(http.MethodGet, "/next_loc?lat="+lat+"&lon=0", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 4, env.queue.Len())
	first, ok := env.queue.Consume()
	require.True(t, ok)
	assert.Equal(t, 3.0, first.Latitude)
}
