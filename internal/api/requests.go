// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/spawnwatch/internal/geo"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// RawDataRequest holds the parsed /raw_data query.
type RawDataRequest struct {
	BBox      models.BoundingBox
	Pokemon   bool
	IDs       []int
	Pokestops bool
	Gyms      bool
	Scanned   bool
	Recent    bool
}

// parseRawDataRequest reads /raw_data parameters. Bounding box values
// degrade to "no bound" when malformed; only a bad ids list is an error.
func parseRawDataRequest(r *http.Request) (RawDataRequest, error) {
	q := r.URL.Query()
	req := RawDataRequest{
		BBox:      models.ParseBoundingBox(q.Get("swLat"), q.Get("swLng"), q.Get("neLat"), q.Get("neLng")),
		Pokemon:   parseBoolParam(r, "pokemon", true),
		Pokestops: parseBoolParam(r, "pokestops", false),
		Gyms:      parseBoolParam(r, "gyms", true),
		Scanned:   parseBoolParam(r, "scanned", true),
		Recent:    parseBoolParam(r, "recent", false),
	}

	ids, err := parseCommaSeparatedInts(q.Get("ids"))
	if err != nil {
		return req, err
	}
	req.IDs = ids
	return req, nil
}

// OriginRequest is a point query whose coordinates default to the configured
// scan origin.
type OriginRequest struct {
	Latitude  float64 `query:"lat" validate:"latitude"`
	Longitude float64 `query:"lon" validate:"longitude"`
}

// Point returns the request origin.
func (o OriginRequest) Point() geo.Point {
	return geo.Point{Lat: o.Latitude, Lon: o.Longitude}
}

// parseOriginRequest reads lat/lon, falling back to def for missing values.
// A present value that is not a number is an error.
func parseOriginRequest(r *http.Request, def geo.Point) (OriginRequest, error) {
	q := r.URL.Query()
	req := OriginRequest{Latitude: def.Lat, Longitude: def.Lon}

	if raw := strings.TrimSpace(q.Get("lat")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("lat: %w", err)
		}
		req.Latitude = v
	}
	if raw := strings.TrimSpace(q.Get("lon")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("lon: %w", err)
		}
		req.Longitude = v
	}
	return req, nil
}

// parseNextLocation reads the redirect coordinates from the query string,
// then lets form body values override them.
func parseNextLocation(r *http.Request) (lat, lon *float64) {
	q := r.URL.Query()
	lat = parseOptionalFloat(q.Get("lat"))
	lon = parseOptionalFloat(q.Get("lon"))

	if r.Method != http.MethodPost {
		return lat, lon
	}
	if err := r.ParseForm(); err != nil {
		return lat, lon
	}
	if _, ok := r.PostForm["lat"]; ok {
		lat = parseOptionalFloat(r.PostForm.Get("lat"))
	}
	if _, ok := r.PostForm["lon"]; ok {
		lon = parseOptionalFloat(r.PostForm.Get("lon"))
	}
	return lat, lon
}
