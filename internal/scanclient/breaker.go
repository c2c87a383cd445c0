// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package scanclient

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// BreakerSettings tunes the circuit breaker around a Client.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32        // requests allowed while half-open
	Interval         time.Duration // count reset period while closed
	Timeout          time.Duration // open period before half-open
	FailureThreshold uint32        // consecutive failures that open the circuit
}

// DefaultBreakerSettings returns the settings used by the server.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "scan-client",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// BreakerClient wraps a Client with circuit breaker protection.
type BreakerClient struct {
	next Client
	cb   *gobreaker.CircuitBreaker[[]models.WildPokemon]
	name string
}

// NewBreakerClient wraps next.
func NewBreakerClient(next Client, s BreakerSettings) *BreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.WildPokemon](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= s.FailureThreshold
			if trip {
				logging.Warn().Uint32("failures", counts.ConsecutiveFailures).Str("breaker", s.Name).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return &BreakerClient{next: next, cb: cb, name: s.Name}
}

// Scan implements Client.
func (b *BreakerClient) Scan(ctx context.Context, lat, lon float64) ([]models.WildPokemon, error) {
	result, err := b.cb.Execute(func() ([]models.WildPokemon, error) {
		return b.next.Scan(ctx, lat, lon)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ScanClientRequests.WithLabelValues("rejected").Inc()
		} else {
			metrics.ScanClientRequests.WithLabelValues("failure").Inc()
		}
		return nil, err
	}
	metrics.ScanClientRequests.WithLabelValues("success").Inc()
	return result, nil
}

// State returns the breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
