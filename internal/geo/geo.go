// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

// Package geo holds the pure geometry and time helpers shared by the query,
// ingestion and response layers: compass labels, great-circle distances,
// scan cell ids, hex scan steps and epoch-millisecond time encoding.
package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters converts angular distances to meters. Clients compare
// distances against values produced with this exact radius, so it must not be
// replaced with the WGS84 mean radius.
const EarthRadiusMeters = 6366468.241830914

// DirectionEpsilon is the per-axis delta in degrees below which a compass
// component is omitted from a bearing label.
const DirectionEpsilon = 1e-4

// ScanCellLevel is the S2 level used for scan coverage cell ids.
const ScanCellLevel = 15

// Annotation is the bearing and distance of a point relative to an origin.
type Annotation struct {
	CardDir  string
	Distance float64
}

// Annotate returns the bearing label and distance of (lat, lon) seen from
// (originLat, originLon).
func Annotate(originLat, originLon, lat, lon float64) Annotation {
	return Annotation{
		CardDir:  BearingLabel(originLat, originLon, lat, lon),
		Distance: Distance(originLat, originLon, lat, lon),
	}
}

// BearingLabel classifies the direction from origin to point into one of
// nine coarse labels: "", N, S, E, W, NE, NW, SE, SW. Each axis is labelled
// from the sign of its delta and dropped when the delta is within
// DirectionEpsilon degrees.
func BearingLabel(originLat, originLon, lat, lon float64) string {
	dLat := lat - originLat
	dLng := math.Remainder(lon-originLon, 360)

	label := ""
	if math.Abs(dLat) > DirectionEpsilon {
		if dLat >= 0 {
			label += "N"
		} else {
			label += "S"
		}
	}
	if math.Abs(dLng) > DirectionEpsilon {
		if dLng >= 0 {
			label += "E"
		} else {
			label += "W"
		}
	}
	return label
}

// Distance returns the great-circle distance in meters between two points
// given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	return Angle(lat1, lon1, lat2, lon2).Radians() * EarthRadiusMeters
}

// Angle returns the central angle between two points given in degrees.
func Angle(lat1, lon1, lat2, lon2 float64) s1.Angle {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b)
}

// CellToken returns the S2 token of the level ScanCellLevel cell containing
// the point.
func CellToken(lat, lon float64) string {
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lon)).Parent(ScanCellLevel).ToToken()
}

// ValidCoordinate reports whether lat/lon are finite and within range.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
