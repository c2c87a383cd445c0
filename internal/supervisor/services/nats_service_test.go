// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockNATSComponents struct {
	startErr error
	running  atomic.Bool
	started  chan struct{}
	shutdown atomic.Int32
}

func (m *mockNATSComponents) Start(context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.running.Store(true)
	if m.started != nil {
		close(m.started)
	}
	return nil
}

func (m *mockNATSComponents) Shutdown(context.Context) {
	m.shutdown.Add(1)
	m.running.Store(false)
}

func (m *mockNATSComponents) IsRunning() bool {
	return m.running.Load()
}

func TestNATSComponentsService_Lifecycle(t *testing.T) {
	mock := &mockNATSComponents{started: make(chan struct{})}
	svc := NewNATSComponentsServiceWithTimeout(mock, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := serveAsync(ctx, svc)

	select {
	case <-mock.started:
	case <-time.After(time.Second):
		t.Fatal("components were not started")
	}
	if !mock.IsRunning() {
		t.Error("components should be running")
	}

	cancel()
	expectCanceled(t, errCh)
	if mock.shutdown.Load() != 1 {
		t.Errorf("expected 1 shutdown, got %d", mock.shutdown.Load())
	}
	if mock.IsRunning() {
		t.Error("components still running after shutdown")
	}
}

func TestNATSComponentsService_StartFailure(t *testing.T) {
	connErr := errors.New("nats: no servers available for connection")
	mock := &mockNATSComponents{startErr: connErr}

	err := NewNATSComponentsService(mock).Serve(context.Background())
	if !errors.Is(err, connErr) {
		t.Errorf("expected start error, got %v", err)
	}
	if mock.shutdown.Load() != 0 {
		t.Error("Shutdown must not run after a failed Start")
	}
}

func TestNewNATSComponentsServiceWithTimeout_Default(t *testing.T) {
	svc := NewNATSComponentsServiceWithTimeout(&mockNATSComponents{}, 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %v", svc.shutdownTimeout)
	}
}
