// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package redirect implements the hand-off between HTTP requests that ask the
scanner to search somewhere else and the scan loop that consumes them.

A Queue is a bounded FIFO. Producers call Submit from request handlers; the
scanner (in-process, or through the NATS relay) calls Consume between scan
iterations. Consume never blocks and never fails: an empty queue simply
returns false.

When the queue is full the oldest pending request is evicted, so a burst of
clicks on the map always ends with the scanner heading for the most recent
ones. Evictions are counted and exposed through Dropped.

In fixed-location mode every submission is rejected with ErrFeatureDisabled
and the queue state is left untouched.

Usage:

	q := redirect.New(cfg.Redirect.Capacity, cfg.Location.FixedLocation)

	// handler
	if err := q.Submit(&lat, &lon); errors.Is(err, redirect.ErrFeatureDisabled) {
	    // 403
	}

	// scan loop
	for {
	    select {
	    case <-q.Notify():
	    case <-ctx.Done():
	        return
	    }
	    for req, ok := q.Consume(); ok; req, ok = q.Consume() {
	        scanner.MoveTo(req.Latitude, req.Longitude)
	    }
	}
*/
package redirect
