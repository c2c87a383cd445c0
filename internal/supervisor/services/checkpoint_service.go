// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/spawnwatch/internal/logging"
)

// Checkpointer is satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// maxCheckpointFailures is how many consecutive failed checkpoints the
// service tolerates before returning an error to its supervisor.
const maxCheckpointFailures = 3

// CheckpointService periodically folds the DuckDB WAL into the database
// file, and once more on shutdown.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService checkpoints db every interval.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	return &CheckpointService{
		db:       db,
		interval: interval,
		name:     "duckdb-checkpoint",
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("checkpoint interval must be positive")
	}
	logger := logging.WithComponent(s.name)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
			if err := s.db.Checkpoint(finalCtx); err != nil {
				logger.Warn().Err(err).Msg("Final checkpoint failed")
			}
			cancel()
			return ctx.Err()

		case <-ticker.C:
			if err := s.db.Checkpoint(ctx); err != nil {
				failures++
				logger.Warn().Err(err).Int("consecutive_failures", failures).Msg("Checkpoint failed")
				if failures >= maxCheckpointFailures {
					return fmt.Errorf("%d consecutive checkpoints failed: %w", failures, err)
				}
				continue
			}
			failures = 0
			logger.Debug().Msg("Checkpoint complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *CheckpointService) String() string {
	return s.name
}
