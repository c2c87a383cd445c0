// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package scanclient

import (
	"context"
	"math"

	"golang.org/x/time/rate"

	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/geo"
	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// Default preview shape: 8 hex rings at 70 m.
const (
	DefaultSteps        = 8
	DefaultStepDistance = 70.0
)

// Previewer runs a paced multi-step scan around an origin.
type Previewer struct {
	client   Client
	limiter  *rate.Limiter
	steps    int
	stepSize float64
}

// NewPreviewer creates a previewer over client using cfg for its shape and
// pacing. A non-positive rate disables pacing.
func NewPreviewer(client Client, cfg *config.ScanClientConfig) *Previewer {
	steps := cfg.Steps
	if steps <= 0 {
		steps = DefaultSteps
	}
	stepSize := cfg.StepDistance
	if stepSize <= 0 {
		stepSize = DefaultStepDistance
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 && !math.IsInf(cfg.RequestsPerSecond, 0) {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Previewer{
		client:   client,
		limiter:  rate.NewLimiter(limit, 1),
		steps:    steps,
		stepSize: stepSize,
	}
}

// Steps returns the scan locations for origin.
func (p *Previewer) Steps(origin geo.Point) []geo.Point {
	return geo.LocationSteps(origin, p.steps, p.stepSize)
}

// Preview scans every step around origin and returns the sightings found.
// Step failures are logged and skipped. The only error returned is the
// context's, when it ends before the walk completes.
func (p *Previewer) Preview(ctx context.Context, origin geo.Point) ([]models.Sighting, error) {
	sightings := make([]models.Sighting, 0)
	logger := logging.Ctx(ctx)

	for step, loc := range p.Steps(origin) {
		if err := p.limiter.Wait(ctx); err != nil {
			return sightings, err
		}

		logger.Debug().Int("step", step+1).Float64("lat", loc.Lat).Float64("lon", loc.Lon).Msg("Preview step")
		wild, err := p.client.Scan(ctx, loc.Lat, loc.Lon)
		if err != nil {
			if ctx.Err() != nil {
				return sightings, ctx.Err()
			}
			logger.Warn().Err(err).Int("step", step+1).Msg("Preview step failed")
			continue
		}
		for _, w := range wild {
			sightings = append(sightings, w.ToSighting())
		}
	}
	return sightings, nil
}
