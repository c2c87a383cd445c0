// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package eventprocessor

import (
	"context"
	"errors"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJetStream records which stream calls were made.
type fakeJetStream struct {
	lookupErr error
	writeErr  error

	created []jetstream.StreamConfig
	updated []jetstream.StreamConfig
}

func (f *fakeJetStream) Stream(context.Context, string) (jetstream.Stream, error) {
	return nil, f.lookupErr
}

func (f *fakeJetStream) CreateStream(_ context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	f.created = append(f.created, cfg)
	return nil, f.writeErr
}

func (f *fakeJetStream) UpdateStream(_ context.Context, cfg jetstream.StreamConfig) (jetstream.Stream, error) {
	f.updated = append(f.updated, cfg)
	return nil, f.writeErr
}

func testStreamConfig() *StreamConfig {
	return &StreamConfig{
		Name:     DefaultStreamName,
		Subjects: []string{"scan.next_location", "scan.entities"},
	}
}

func TestNewStreamInitializer_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		js   JetStreamContext
		cfg  *StreamConfig
	}{
		{"nil context", nil, testStreamConfig()},
		{"nil config", &fakeJetStream{}, nil},
		{"no subjects", &fakeJetStream{}, &StreamConfig{Name: "SCAN"}},
		{"no name", &fakeJetStream{}, &StreamConfig{Subjects: []string{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewStreamInitializer(tt.js, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestEnsureStream(t *testing.T) {
	t.Parallel()

	t.Run("creates missing stream", func(t *testing.T) {
		t.Parallel()
		js := &fakeJetStream{lookupErr: jetstream.ErrStreamNotFound}
		si, err := NewStreamInitializer(js, testStreamConfig())
		require.NoError(t, err)

		_, err = si.EnsureStream(context.Background())
		require.NoError(t, err)
		require.Len(t, js.created, 1)
		assert.Empty(t, js.updated)
		assert.Equal(t, []string{"scan.next_location", "scan.entities"}, js.created[0].Subjects)
		assert.Equal(t, jetstream.FileStorage, js.created[0].Storage)
	})

	t.Run("updates existing stream", func(t *testing.T) {
		t.Parallel()
		js := &fakeJetStream{}
		si, err := NewStreamInitializer(js, testStreamConfig())
		require.NoError(t, err)

		_, err = si.EnsureStream(context.Background())
		require.NoError(t, err)
		assert.Empty(t, js.created)
		assert.Len(t, js.updated, 1)
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Parallel()
		js := &fakeJetStream{lookupErr: errors.New("no responders")}
		si, err := NewStreamInitializer(js, testStreamConfig())
		require.NoError(t, err)

		_, err = si.EnsureStream(context.Background())
		require.Error(t, err)
		assert.Empty(t, js.created)
		assert.Empty(t, js.updated)
	})

	t.Run("create failure", func(t *testing.T) {
		t.Parallel()
		js := &fakeJetStream{lookupErr: jetstream.ErrStreamNotFound, writeErr: errors.New("insufficient resources")}
		si, err := NewStreamInitializer(js, testStreamConfig())
		require.NoError(t, err)

		_, err = si.EnsureStream(context.Background())
		assert.ErrorContains(t, err, "create stream SCAN")
	})
}
