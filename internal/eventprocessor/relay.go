// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package eventprocessor

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// MessagePublisher is the publish side the relay needs. *Publisher
// implements it.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, msg *message.Message) error
}

// RedirectSource yields accepted redirects. *redirect.Queue implements it.
type RedirectSource interface {
	Consume() (models.LocationRequest, bool)
	Notify() <-chan struct{}
}

// DefaultRetryDelay is the wait after a failed publish.
const DefaultRetryDelay = time.Second

// LocationRelay forwards accepted redirects to the next-location subject in
// submission order. A redirect whose publish fails is retried before any
// newer one is sent.
type LocationRelay struct {
	source     RedirectSource
	publisher  MessagePublisher
	topic      string
	retryDelay time.Duration

	pending *models.LocationRequest
}

// NewLocationRelay creates a relay from source to topic.
func NewLocationRelay(source RedirectSource, publisher MessagePublisher, topic string) *LocationRelay {
	return &LocationRelay{
		source:     source,
		publisher:  publisher,
		topic:      topic,
		retryDelay: DefaultRetryDelay,
	}
}

// Serve implements suture.Service. It returns ctx.Err() on shutdown.
func (r *LocationRelay) Serve(ctx context.Context) error {
	logger := logging.WithComponent("location-relay")
	logger.Info().Str("topic", r.topic).Msg("Location relay started")

	for {
		if !r.drain(ctx) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.retryDelay):
			}
			continue
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("Location relay stopped")
			return ctx.Err()
		case <-r.source.Notify():
		}
	}
}

// drain publishes every pending redirect. It reports false when a publish
// failed and the relay should back off.
func (r *LocationRelay) drain(ctx context.Context) bool {
	for {
		if r.pending == nil {
			loc, ok := r.source.Consume()
			if !ok {
				return true
			}
			r.pending = &loc
		}

		if err := r.publish(ctx, *r.pending); err != nil {
			logging.CtxErr(ctx, err).
				Float64("lat", r.pending.Latitude).
				Float64("lon", r.pending.Longitude).
				Msg("Failed to relay redirect")
			return false
		}
		r.pending = nil
	}
}

func (r *LocationRelay) publish(ctx context.Context, loc models.LocationRequest) error {
	msg, err := NewLocationMessage(loc)
	if err != nil {
		return err
	}
	if err := r.publisher.Publish(ctx, r.topic, msg); err != nil {
		return err
	}
	logging.Debug().
		Float64("lat", loc.Latitude).
		Float64("lon", loc.Longitude).
		Str("message_uuid", msg.UUID).
		Msg("Redirect relayed")
	return nil
}

// String implements fmt.Stringer for suture logs.
func (r *LocationRelay) String() string {
	return "location-relay"
}
