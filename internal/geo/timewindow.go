// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package geo

import (
	"fmt"
	"time"
)

// EpochMillis encodes t as milliseconds since the Unix epoch. Any zone offset
// carried by t is removed first, so equal instants always encode equally.
func EpochMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// FromEpochMillis decodes milliseconds since the Unix epoch into a UTC time.
func FromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// TimeRemaining splits the whole seconds between now and disappear into
// minutes and seconds. A disappear instant in the past yields 0, 0.
func TimeRemaining(disappear, now time.Time) (minutes, seconds int) {
	remaining := int(disappear.Sub(now) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return remaining / 60, remaining % 60
}

// FormatRemaining renders TimeRemaining as "12 min 34 sec".
func FormatRemaining(disappear, now time.Time) string {
	m, s := TimeRemaining(disappear, now)
	return fmt.Sprintf("%d min %d sec", m, s)
}
