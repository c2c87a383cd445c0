// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package eventprocessor

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// EntityWriter is the write side of an entity store. Both the DuckDB store
// and the in-memory store implement it.
type EntityWriter interface {
	BulkUpsertPokemon(ctx context.Context, batch []models.Pokemon) (int, error)
	BulkUpsertPokestops(ctx context.Context, batch []models.Pokestop) (int, error)
	BulkUpsertGyms(ctx context.Context, batch []models.Gym) (int, error)
	BulkUpsertScannedLocations(ctx context.Context, batch []models.ScannedLocation) (int, error)
}

// BatchBroadcaster announces written batches. *websocket.Hub implements it.
type BatchBroadcaster interface {
	BroadcastBatch(b models.EntityBatch)
}

// EntityHandler applies scanner entity batches to the store.
type EntityHandler struct {
	store       EntityWriter
	broadcaster BatchBroadcaster
	timeout     time.Duration
}

// NewEntityHandler creates a handler. broadcaster may be nil.
func NewEntityHandler(store EntityWriter, broadcaster BatchBroadcaster) *EntityHandler {
	return &EntityHandler{
		store:       store,
		broadcaster: broadcaster,
		timeout:     30 * time.Second,
	}
}

// Handle implements message.NoPublishHandlerFunc.
//
// Payloads that are not JSON objects are acknowledged and dropped since
// redelivery cannot fix them. Store failures are returned so the router
// retries and JetStream redelivers.
func (h *EntityHandler) Handle(msg *message.Message) error {
	logger := logging.With().Str("message_uuid", msg.UUID).Logger()

	batch, perrs, err := DecodeEntityBatch(msg)
	if err != nil {
		logger.Warn().Err(err).Msg("Dropping undecodable entity batch")
		metrics.RecordNATS("consume", "invalid")
		return nil
	}
	for _, perr := range perrs {
		logger.Warn().
			Str("kind", string(perr.Kind)).
			Int("index", perr.Index).
			Str("id", perr.ID).
			Err(perr.Err).
			Msg("Skipping malformed record")
	}
	metrics.RecordSkipped("nats", len(perrs))

	if batch.Len() == 0 {
		metrics.RecordNATS("consume", "empty")
		return nil
	}

	ctx, cancel := context.WithTimeout(msg.Context(), h.timeout)
	defer cancel()

	if err := h.write(ctx, batch); err != nil {
		metrics.RecordNATS("consume", "error")
		return err
	}

	metrics.RecordNATS("consume", "ok")
	logger.Debug().
		Int("pokemons", len(batch.Pokemons)).
		Int("pokestops", len(batch.Pokestops)).
		Int("gyms", len(batch.Gyms)).
		Int("scanned", len(batch.Scanned)).
		Int("skipped", len(perrs)).
		Msg("Entity batch applied")

	if h.broadcaster != nil {
		h.broadcaster.BroadcastBatch(batch)
	}
	return nil
}

// write upserts each kind. Upserts are idempotent, so a retry after a
// partial failure rewrites the same rows.
func (h *EntityHandler) write(ctx context.Context, b models.EntityBatch) error {
	if len(b.Pokemons) > 0 {
		if _, err := h.store.BulkUpsertPokemon(ctx, b.Pokemons); err != nil {
			return fmt.Errorf("upsert pokemon: %w", err)
		}
	}
	if len(b.Pokestops) > 0 {
		if _, err := h.store.BulkUpsertPokestops(ctx, b.Pokestops); err != nil {
			return fmt.Errorf("upsert pokestops: %w", err)
		}
	}
	if len(b.Gyms) > 0 {
		if _, err := h.store.BulkUpsertGyms(ctx, b.Gyms); err != nil {
			return fmt.Errorf("upsert gyms: %w", err)
		}
	}
	if len(b.Scanned) > 0 {
		if _, err := h.store.BulkUpsertScannedLocations(ctx, b.Scanned); err != nil {
			return fmt.Errorf("upsert scanned locations: %w", err)
		}
	}
	return nil
}
