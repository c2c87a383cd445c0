// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package models

import (
	"math"
	"strconv"
	"strings"
)

// BoundingBox is an axis-aligned latitude/longitude filter. Each bound is
// independently optional: a nil bound adds no predicate, so a partially
// specified box filters on the given sides only.
type BoundingBox struct {
	SWLat *float64
	SWLng *float64
	NELat *float64
	NELng *float64
}

// ParseBoundingBox builds a box from raw query values. Values that are
// empty, non-numeric, NaN or infinite are treated as absent.
func ParseBoundingBox(swLat, swLng, neLat, neLng string) BoundingBox {
	return BoundingBox{
		SWLat: parseBound(swLat),
		SWLng: parseBound(swLng),
		NELat: parseBound(neLat),
		NELng: parseBound(neLng),
	}
}

// NewBoundingBox builds a box with all four bounds set.
func NewBoundingBox(swLat, swLng, neLat, neLng float64) BoundingBox {
	return BoundingBox{SWLat: &swLat, SWLng: &swLng, NELat: &neLat, NELng: &neLng}
}

func parseBound(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// IsEmpty reports whether no bound is set.
func (b BoundingBox) IsEmpty() bool {
	return b.SWLat == nil && b.SWLng == nil && b.NELat == nil && b.NELng == nil
}

// Contains reports whether the point satisfies every bound that is set.
// Bounds are inclusive.
func (b BoundingBox) Contains(lat, lng float64) bool {
	if b.SWLat != nil && lat < *b.SWLat {
		return false
	}
	if b.NELat != nil && lat > *b.NELat {
		return false
	}
	if b.SWLng != nil && lng < *b.SWLng {
		return false
	}
	if b.NELng != nil && lng > *b.NELng {
		return false
	}
	return true
}
