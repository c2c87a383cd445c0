// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package eventprocessor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/spawnwatch/internal/models"
	"github.com/tomtom215/spawnwatch/internal/redirect"
)

const testLocationTopic = "scan.next_location"

func submit(t *testing.T, q *redirect.Queue, lat, lon float64) {
	t.Helper()
	require.NoError(t, q.Submit(&lat, &lon))
}

func runRelay(t *testing.T, relay *LocationRelay) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Error("relay did not stop")
		}
	})
}

func receiveLocation(t *testing.T, messages <-chan *message.Message) models.LocationRequest {
	t.Helper()
	select {
	case msg := <-messages:
		msg.Ack()
		loc, err := DecodeLocation(msg)
		require.NoError(t, err)
		assert.Equal(t, "next_location", msg.Metadata.Get(MetadataKind))
		return loc
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for relayed location")
		return models.LocationRequest{}
	}
}

func TestLocationRelay_PublishesInOrder(t *testing.T) {
	t.Parallel()
	ps := newOrderedPubSub(t)
	queue := redirect.New(8, false)

	messages, err := ps.Subscribe(context.Background(), testLocationTopic)
	require.NoError(t, err)

	submit(t, queue, 1, 1)
	submit(t, queue, 2, 2)
	runRelay(t, NewLocationRelay(queue, WrapPublisher(ps), testLocationTopic))

	assert.Equal(t, 1.0, receiveLocation(t, messages).Latitude)
	assert.Equal(t, 2.0, receiveLocation(t, messages).Latitude)

	submit(t, queue, 3, -3)
	loc := receiveLocation(t, messages)
	assert.Equal(t, 3.0, loc.Latitude)
	assert.Equal(t, -3.0, loc.Longitude)
	assert.False(t, loc.RequestedAt.IsZero())
	assert.Zero(t, queue.Len())
}

// flakyPublisher fails the first n publishes.
type flakyPublisher struct {
	mu       sync.Mutex
	failures int
	got      []models.LocationRequest
}

func (f *flakyPublisher) Publish(_ context.Context, _ string, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("nats: timeout")
	}
	loc, err := DecodeLocation(msg)
	if err != nil {
		return err
	}
	f.got = append(f.got, loc)
	return nil
}

func (f *flakyPublisher) published() []models.LocationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.LocationRequest(nil), f.got...)
}

func TestLocationRelay_RetriesFailedRedirectFirst(t *testing.T) {
	t.Parallel()
	queue := redirect.New(8, false)
	pub := &flakyPublisher{failures: 2}

	relay := NewLocationRelay(queue, pub, testLocationTopic)
	relay.retryDelay = 10 * time.Millisecond

	submit(t, queue, 1, 0)
	submit(t, queue, 2, 0)
	runRelay(t, relay)

	require.Eventually(t, func() bool { return len(pub.published()) == 2 }, 5*time.Second, 10*time.Millisecond)
	got := pub.published()
	assert.Equal(t, 1.0, got[0].Latitude)
	assert.Equal(t, 2.0, got[1].Latitude)
}

func TestLocationRelay_DrainsQueueFIFO(t *testing.T) {
	t.Parallel()
	queue := redirect.New(8, false)
	pub := &flakyPublisher{}

	for i := 1; i <= 5; i++ {
		submit(t, queue, float64(i), 0)
	}
	runRelay(t, NewLocationRelay(queue, pub, testLocationTopic))

	require.Eventually(t, func() bool { return len(pub.published()) == 5 }, 5*time.Second, 10*time.Millisecond)
	for i, loc := range pub.published() {
		assert.Equal(t, float64(i+1), loc.Latitude)
	}
}

func TestPublisher_ClosedRejects(t *testing.T) {
	t.Parallel()
	pub := WrapPublisher(newPubSub(t))
	require.NoError(t, pub.Close())
	require.NoError(t, pub.Close(), "second close is a no-op")

	msg, err := NewLocationMessage(models.LocationRequest{Latitude: 1})
	require.NoError(t, err)
	assert.ErrorIs(t, pub.Publish(context.Background(), testLocationTopic, msg), ErrPublisherClosed)
}

// failingPublisher always fails.
type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(string, ...*message.Message) error {
	f.calls++
	return errors.New("connection refused")
}

func (f *failingPublisher) Close() error { return nil }

func TestPublisher_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()
	inner := &failingPublisher{}
	pub := WrapPublisher(inner)
	cfg := DefaultCircuitBreakerConfig("test-publish-breaker")
	cfg.FailureThreshold = 2
	pub.SetCircuitBreaker(NewCircuitBreaker(cfg))

	for i := 0; i < 4; i++ {
		msg, err := NewLocationMessage(models.LocationRequest{})
		require.NoError(t, err)
		assert.Error(t, pub.Publish(context.Background(), testLocationTopic, msg))
	}
	assert.Equal(t, 2, inner.calls, "open circuit must short-circuit publishes")
}

func TestPublisher_SetsMsgID(t *testing.T) {
	t.Parallel()
	ps := newPubSub(t)
	messages, err := ps.Subscribe(context.Background(), testLocationTopic)
	require.NoError(t, err)

	msg, err := NewLocationMessage(models.LocationRequest{Latitude: 5})
	require.NoError(t, err)
	require.NoError(t, WrapPublisher(ps).Publish(context.Background(), testLocationTopic, msg))

	select {
	case got := <-messages:
		got.Ack()
		assert.Equal(t, msg.UUID, got.Metadata.Get("Nats-Msg-Id"))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}
