// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package geo

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/s2"
)

func TestBearingLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"north east", 1, 1, "NE"},
		{"north west", 1, -1, "NW"},
		{"south east", -1, 1, "SE"},
		{"south west", -1, -1, "SW"},
		{"south only", -1, 0, "S"},
		{"north only", 1, 0, "N"},
		{"east only", 0, 1, "E"},
		{"west only", 0, -1, "W"},
		{"within epsilon on both axes", 0, 0.00001, ""},
		{"co-located", 0, 0, ""},
		{"exactly epsilon is omitted", DirectionEpsilon, 0, ""},
		{"just above epsilon", 0.00011, 0, "N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := BearingLabel(0, 0, tt.lat, tt.lon); got != tt.want {
				t.Errorf("BearingLabel(0,0,%v,%v) = %q, want %q", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestBearingLabel_AntimeridianWraps(t *testing.T) {
	t.Parallel()

	// 179 -> -179 is two degrees east, not 358 degrees west
	if got := BearingLabel(0, 179, 0, -179); got != "E" {
		t.Errorf("BearingLabel across antimeridian = %q, want E", got)
	}
}

func TestDistance_OneDegreeAtEquator(t *testing.T) {
	t.Parallel()

	want := 6366468.241830914 * math.Pi / 180
	got := Distance(0, 0, 0, 1)

	if rel := math.Abs(got-want) / want; rel > 1e-6 {
		t.Errorf("Distance(0,0,0,1) = %v, want %v (relative error %v)", got, want, rel)
	}
	if int(got) != 111115 {
		t.Errorf("int(Distance) = %d, want 111115", int(got))
	}
}

func TestDistance_Properties(t *testing.T) {
	t.Parallel()

	if d := Distance(51.5, -0.12, 51.5, -0.12); d != 0 {
		t.Errorf("Distance to self = %v, want 0", d)
	}

	ab := Distance(40.7589, -73.9851, 34.0522, -118.2437)
	ba := Distance(34.0522, -118.2437, 40.7589, -73.9851)
	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
	}

	// pole to pole is half the circumference
	want := math.Pi * EarthRadiusMeters
	if got := Distance(90, 0, -90, 0); math.Abs(got-want)/want > 1e-9 {
		t.Errorf("pole to pole = %v, want %v", got, want)
	}
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	a := Annotate(0, 0, 1, 1)
	if a.CardDir != "NE" {
		t.Errorf("CardDir = %q, want NE", a.CardDir)
	}
	if a.Distance <= Distance(0, 0, 0, 1) {
		t.Errorf("diagonal distance %v should exceed one degree of longitude", a.Distance)
	}
}

func TestCellToken(t *testing.T) {
	t.Parallel()

	a := CellToken(40.7589, -73.9851)
	far := CellToken(34.0522, -118.2437)

	if a == "" {
		t.Fatal("CellToken returned empty token")
	}
	id := s2.CellIDFromToken(a)
	if id.Level() != ScanCellLevel {
		t.Errorf("token level = %d, want %d", id.Level(), ScanCellLevel)
	}
	if !s2.CellFromCellID(id).ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(40.7589, -73.9851))) {
		t.Error("cell does not contain the source point")
	}
	if a == far {
		t.Error("distant points should not share a cell")
	}
}

func TestValidCoordinate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.1, 0, false},
		{0, -180.1, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := ValidCoordinate(tt.lat, tt.lon); got != tt.want {
			t.Errorf("ValidCoordinate(%v,%v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}

func TestEpochMillis(t *testing.T) {
	t.Parallel()

	utc := time.Date(2016, 1, 1, 0, 0, 0, 500*int(time.Millisecond), time.UTC)
	if got := EpochMillis(utc); got != 1451606400500 {
		t.Errorf("EpochMillis(%v) = %d, want 1451606400500", utc, got)
	}

	// same instant expressed with a +02:00 offset
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	shifted := time.Date(2016, 1, 1, 2, 0, 0, 500*int(time.Millisecond), plus2)
	if got := EpochMillis(shifted); got != 1451606400500 {
		t.Errorf("EpochMillis(%v) = %d, want 1451606400500", shifted, got)
	}

	// sub-millisecond precision truncates
	withMicros := utc.Add(999 * time.Microsecond)
	if got := EpochMillis(withMicros); got != 1451606400500 {
		t.Errorf("EpochMillis(%v) = %d, want 1451606400500", withMicros, got)
	}

	if back := FromEpochMillis(1451606400500); !back.Equal(utc) || back.Location() != time.UTC {
		t.Errorf("FromEpochMillis = %v, want %v in UTC", back, utc)
	}
}

func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2016, 7, 20, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		disappear time.Time
		want      string
	}{
		{"minutes and seconds", now.Add(12*time.Minute + 34*time.Second), "12 min 34 sec"},
		{"fractional second truncates", now.Add(59*time.Second + 900*time.Millisecond), "0 min 59 sec"},
		{"exactly now", now, "0 min 0 sec"},
		{"in the past clamps", now.Add(-5 * time.Minute), "0 min 0 sec"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatRemaining(tt.disappear, now); got != tt.want {
				t.Errorf("FormatRemaining = %q, want %q", got, tt.want)
			}
		})
	}
}
