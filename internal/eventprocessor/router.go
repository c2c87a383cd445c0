// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package eventprocessor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/spawnwatch/internal/cache"
	"github.com/tomtom215/spawnwatch/internal/metrics"
)

// dedupCapacity bounds the number of remembered message ids.
const dedupCapacity = 10000

// Deduplicator drops messages whose id was already handled successfully
// within the TTL. Ids are only recorded after the handler succeeds, so a
// failed message is still retried and redelivered.
type Deduplicator struct {
	seen *cache.LRU
}

// NewDeduplicator remembers ids for ttl.
func NewDeduplicator(ttl time.Duration) *Deduplicator {
	return &Deduplicator{seen: cache.NewLRU(dedupCapacity, ttl)}
}

// Middleware implements message.HandlerMiddleware.
func (d *Deduplicator) Middleware(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		if d.seen.Contains(msg.UUID) {
			metrics.RecordNATS("consume", "duplicate")
			return nil, nil
		}
		out, err := h(msg)
		if err == nil {
			d.seen.IsDuplicate(msg.UUID)
		}
		return out, err
	}
}

// Router wraps the Watermill Router with the relay middleware stack, outer to
// inner: panic recovery, message id deduplication, retry with backoff.
type Router struct {
	router  *message.Router
	config  RouterConfig
	logger  watermill.LoggerAdapter
	dedup   *Deduplicator
	running atomic.Bool
}

// NewRouter creates a router. A nil cfg uses DefaultRouterConfig.
func NewRouter(cfg *RouterConfig, logger watermill.LoggerAdapter) (*Router, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if cfg == nil {
		defaultCfg := DefaultRouterConfig()
		cfg = &defaultCfg
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	r := &Router{
		router: wmRouter,
		config: *cfg,
		logger: logger,
	}

	wmRouter.AddMiddleware(middleware.Recoverer)

	if cfg.DeduplicationEnabled {
		r.dedup = NewDeduplicator(cfg.DeduplicationTTL)
		wmRouter.AddMiddleware(r.dedup.Middleware)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	return r, nil
}

// AddConsumerHandler registers a handler that produces no output messages.
func (r *Router) AddConsumerHandler(name, topic string, sub message.Subscriber, handler message.NoPublishHandlerFunc) *message.Handler {
	return r.router.AddConsumerHandler(name, topic, sub, handler)
}

// Run starts the router and blocks until ctx ends or Close is called.
func (r *Router) Run(ctx context.Context) error {
	r.running.Store(true)
	defer r.running.Store(false)
	return r.router.Run(ctx)
}

// Running returns a channel that closes when the router is running.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to CloseTimeout for handlers.
func (r *Router) Close() error {
	return r.router.Close()
}

// IsRunning returns whether the router is currently processing messages.
func (r *Router) IsRunning() bool {
	return r.running.Load()
}
