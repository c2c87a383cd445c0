// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/spawnwatch/internal/geo"
)

// Timestamp is a UTC instant that serializes as milliseconds since the Unix
// epoch. Decoding also accepts RFC 3339 strings and numeric strings, which
// some scanners emit.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// Millis returns the epoch millisecond encoding.
func (t Timestamp) Millis() int64 {
	return geo.EpochMillis(t.Time)
}

// MarshalJSON encodes the instant as epoch milliseconds, or null when zero.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.Millis(), 10), nil
}

// UnmarshalJSON accepts epoch milliseconds (number or string), RFC 3339, or null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}

	if data[0] != '"' {
		ms, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("timestamp: invalid number %s: %w", data, err)
		}
		*t = Timestamp{Time: geo.FromEpochMillis(int64(ms))}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimestamp parses epoch milliseconds or an RFC 3339 string.
func ParseTimestamp(s string) (Timestamp, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Timestamp{Time: geo.FromEpochMillis(ms)}, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp: %q is neither epoch millis nor RFC 3339", s)
	}
	return NewTimestamp(parsed), nil
}
