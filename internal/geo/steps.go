// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package geo

import "math"

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// axial hex directions, walked in order around each ring
var hexDirections = [6][2]int{
	{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// LocationSteps returns the scan locations of a hexagonal spiral around
// origin: the origin itself followed by rings 1..steps-1, each ring k holding
// 6k points. Neighbouring points are stepMeters apart. steps < 1 yields nil.
func LocationSteps(origin Point, steps int, stepMeters float64) []Point {
	if steps < 1 {
		return nil
	}

	points := make([]Point, 0, 1+3*steps*(steps-1))
	points = append(points, origin)

	for ring := 1; ring < steps; ring++ {
		// start at direction 4 scaled by ring, then walk six sides
		q, r := hexDirections[4][0]*ring, hexDirections[4][1]*ring
		for side := 0; side < 6; side++ {
			for i := 0; i < ring; i++ {
				points = append(points, offset(origin, q, r, stepMeters))
				q += hexDirections[side][0]
				r += hexDirections[side][1]
			}
		}
	}
	return points
}

// offset converts axial hex coordinates to a point near origin using a local
// equirectangular approximation, which is accurate at scan-step distances.
func offset(origin Point, q, r int, stepMeters float64) Point {
	east := stepMeters * (float64(q) + float64(r)/2)
	north := stepMeters * (float64(r) * math.Sqrt(3) / 2)

	dLat := north / EarthRadiusMeters * 180 / math.Pi
	dLon := east / (EarthRadiusMeters * math.Cos(origin.Lat*math.Pi/180)) * 180 / math.Pi

	return Point{Lat: origin.Lat + dLat, Lon: origin.Lon + dLon}
}
