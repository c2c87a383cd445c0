// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package spawnimport

import (
	"fmt"
	"time"

	"github.com/tomtom215/spawnwatch/internal/models"
)

// ImportStats holds statistics about an import operation.
type ImportStats struct {
	// TotalFeatures is the number of features in the document.
	TotalFeatures int

	// Imported is the number of pokemon written after deduplication.
	Imported int

	// Skipped is the number of malformed features.
	Skipped int

	// Errors holds one entry per skipped feature.
	Errors []*models.ParseError

	// StartTime is when the import started.
	StartTime time.Time

	// EndTime is when the import completed (zero if still running).
	EndTime time.Time
}

// Duration returns the duration of the import operation.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// FeaturesPerSecond returns the import rate.
func (s *ImportStats) FeaturesPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.TotalFeatures) / duration
}

// Summary renders the outcome the way the import endpoint reports it.
func (s *ImportStats) Summary() string {
	return fmt.Sprintf("Imported %d pokemon (%d skipped)", s.Imported, s.Skipped)
}
