// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package redirect

import (
	"math"
	"sync"
	"time"

	"github.com/tomtom215/spawnwatch/internal/metrics"
	"github.com/tomtom215/spawnwatch/internal/models"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 8

// Queue is a bounded, mutex-guarded FIFO of pending scan locations.
type Queue struct {
	mu      sync.Mutex
	buf     []models.LocationRequest
	head    int
	size    int
	dropped uint64
	fixed   bool
	notify  chan struct{}
	nowFunc func() time.Time
}

// New creates a queue holding at most capacity pending requests. When fixed
// is true the queue rejects every submission.
func New(capacity int, fixed bool) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		buf:     make([]models.LocationRequest, capacity),
		fixed:   fixed,
		notify:  make(chan struct{}, 1),
		nowFunc: time.Now,
	}
}

// Submit validates and enqueues a location request. A nil pointer means the
// coordinate was not supplied.
func (q *Queue) Submit(lat, lon *float64) error {
	if q.fixed {
		metrics.RecordRedirect("disabled", q.Len())
		return ErrFeatureDisabled
	}
	if err := validateCoordinate("lat", lat, 90); err != nil {
		metrics.RecordRedirect("invalid", q.Len())
		return err
	}
	if err := validateCoordinate("lon", lon, 180); err != nil {
		metrics.RecordRedirect("invalid", q.Len())
		return err
	}

	req := models.LocationRequest{
		Latitude:    *lat,
		Longitude:   *lon,
		RequestedAt: q.nowFunc().UTC(),
	}

	q.mu.Lock()
	if q.size == len(q.buf) {
		// evict oldest
		q.buf[q.head] = models.LocationRequest{}
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped++
		metrics.RedirectDropped.Inc()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = req
	q.size++
	pending := q.size
	q.mu.Unlock()

	metrics.RecordRedirect("accepted", pending)

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return nil
}

// Consume removes and returns the oldest pending request. It reports false
// when nothing is pending.
func (q *Queue) Consume() (models.LocationRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		return models.LocationRequest{}, false
	}
	req := q.buf[q.head]
	q.buf[q.head] = models.LocationRequest{}
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	metrics.RedirectPending.Set(float64(q.size))
	return req, true
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return len(q.buf) }

// Dropped returns how many pending requests were evicted by overflow.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Fixed reports whether the queue runs in fixed-location mode.
func (q *Queue) Fixed() bool { return q.fixed }

// Notify returns a channel that receives a value after successful submits.
// Multiple submits between reads coalesce into one signal.
func (q *Queue) Notify() <-chan struct{} { return q.notify }

func validateCoordinate(field string, v *float64, limit float64) error {
	switch {
	case v == nil:
		return &ValidationError{Field: field, Reason: "missing"}
	case math.IsNaN(*v) || math.IsInf(*v, 0):
		return &ValidationError{Field: field, Reason: "not a finite number"}
	case *v < -limit || *v > limit:
		return &ValidationError{Field: field, Reason: "out of range"}
	}
	return nil
}
