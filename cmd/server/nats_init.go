// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/spawnwatch/internal/config"
	"github.com/tomtom215/spawnwatch/internal/eventprocessor"
	"github.com/tomtom215/spawnwatch/internal/logging"
)

// streamSetupTimeout bounds the JetStream stream create/update round trip.
const streamSetupTimeout = 30 * time.Second

// NATSComponents holds the scanner relay for lifecycle management:
// accepted redirects go out on the next-location subject, entity batches
// come in on the entities subject.
type NATSComponents struct {
	cfg         *config.NATSConfig
	source      eventprocessor.RedirectSource
	store       eventprocessor.EntityWriter
	broadcaster eventprocessor.BatchBroadcaster
	logger      watermill.LoggerAdapter

	server     *eventprocessor.EmbeddedServer
	natsConn   *natsgo.Conn
	publisher  *eventprocessor.Publisher
	subscriber message.Subscriber
	router     *eventprocessor.Router

	relayCancel context.CancelFunc
	relayDone   chan struct{}

	mu      sync.Mutex
	running bool
}

// NewNATSComponents returns nil when the relay is disabled. Connections are
// made in Start so the supervisor can retry a NATS server that is not up yet.
func NewNATSComponents(cfg *config.Config, source eventprocessor.RedirectSource, store eventprocessor.EntityWriter, broadcaster eventprocessor.BatchBroadcaster) *NATSComponents {
	if !cfg.NATS.Enabled {
		logging.Info().Msg("NATS relay disabled (NATS_ENABLED=false)")
		return nil
	}
	return &NATSComponents{
		cfg:         &cfg.NATS,
		source:      source,
		store:       store,
		broadcaster: broadcaster,
		logger:      logging.NewWatermillAdapter(logging.WithComponent("nats")),
	}
}

// Start brings up the relay in dependency order: embedded server, stream,
// publisher, location relay, subscriber and router. On failure everything
// already started is torn down again.
func (c *NATSComponents) Start(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}

	if err := c.start(ctx); err != nil {
		c.teardown(context.Background())
		return err
	}
	c.running = true
	logging.Info().Msg("NATS relay started")
	return nil
}

func (c *NATSComponents) start(ctx context.Context) error {
	natsURL := c.cfg.URL
	if c.cfg.EmbeddedServer {
		serverCfg := eventprocessor.ServerConfigFrom(c.cfg)
		server, err := eventprocessor.NewEmbeddedServer(&serverCfg)
		if err != nil {
			return err
		}
		c.server = server
		natsURL = server.ClientURL()
		logging.Info().Str("url", natsURL).Msg("Embedded NATS server started")
	} else {
		logging.Info().Str("url", natsURL).Msg("Using external NATS server")
	}

	nc, err := natsgo.Connect(natsURL,
		natsgo.Name("spawnwatch"),
		natsgo.MaxReconnects(c.cfg.MaxReconnects),
		natsgo.ReconnectWait(c.cfg.ReconnectWait),
	)
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	c.natsConn = nc

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}
	streamCfg := eventprocessor.DefaultStreamConfig(c.cfg)
	streamInit, err := eventprocessor.NewStreamInitializer(js, &streamCfg)
	if err != nil {
		return fmt.Errorf("create stream initializer: %w", err)
	}
	streamCtx, cancel := context.WithTimeout(ctx, streamSetupTimeout)
	stream, err := streamInit.EnsureStream(streamCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("ensure stream exists: %w", err)
	}
	info := stream.CachedInfo()
	logging.Info().
		Str("name", info.Config.Name).
		Strs("subjects", info.Config.Subjects).
		Dur("max_age", info.Config.MaxAge).
		Msg("JetStream stream ready")

	pubCfg := eventprocessor.DefaultPublisherConfig(natsURL)
	pubCfg.MaxReconnects = c.cfg.MaxReconnects
	if c.cfg.ReconnectWait > 0 {
		pubCfg.ReconnectWait = c.cfg.ReconnectWait
	}
	publisher, err := eventprocessor.NewPublisher(pubCfg, c.logger)
	if err != nil {
		return err
	}
	publisher.SetCircuitBreaker(eventprocessor.NewCircuitBreaker(eventprocessor.DefaultCircuitBreakerConfig("nats-publisher")))
	c.publisher = publisher

	subCfg := eventprocessor.SubscriberConfigFrom(natsURL, c.cfg)
	subCfg.StreamName = streamCfg.Name
	subscriber, err := eventprocessor.NewSubscriber(&subCfg, c.logger)
	if err != nil {
		return fmt.Errorf("create entity subscriber: %w", err)
	}
	c.subscriber = subscriber

	routerCfg := eventprocessor.DefaultRouterConfig()
	if c.cfg.CloseTimeout > 0 {
		routerCfg.CloseTimeout = c.cfg.CloseTimeout
	}
	router, err := eventprocessor.NewRouter(&routerCfg, c.logger)
	if err != nil {
		return err
	}
	c.router = router

	entityHandler := eventprocessor.NewEntityHandler(c.store, c.broadcaster)
	router.AddConsumerHandler("entity-ingest", c.cfg.EntitiesTopic, subscriber, entityHandler.Handle)

	// Background context: the router and relay live until Shutdown, not
	// until the Start caller's context ends.
	go func() {
		if err := router.Run(context.Background()); err != nil {
			logging.Error().Err(err).Msg("Watermill router stopped with error")
		}
	}()
	select {
	case <-router.Running():
		logging.Info().Str("topic", c.cfg.EntitiesTopic).Msg("Entity router running")
	case <-ctx.Done():
		return fmt.Errorf("context canceled while starting router: %w", ctx.Err())
	}

	relay := eventprocessor.NewLocationRelay(c.source, publisher, c.cfg.NextLocationTopic)
	relayCtx, relayCancel := context.WithCancel(context.Background())
	c.relayCancel = relayCancel
	c.relayDone = make(chan struct{})
	go func() {
		defer close(c.relayDone)
		_ = relay.Serve(relayCtx)
	}()

	return nil
}

// Shutdown stops consumption first, then the relay, the publisher, the
// connection and finally the embedded server.
func (c *NATSComponents) Shutdown(ctx context.Context) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false

	logging.Info().Msg("Shutting down NATS relay...")
	c.teardown(ctx)
	logging.Info().Msg("NATS relay shutdown complete")
}

// teardown releases whatever start created. It tolerates partial setup.
func (c *NATSComponents) teardown(ctx context.Context) {
	if c.router != nil {
		if err := c.router.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing router")
		}
		c.router = nil
	}
	if c.subscriber != nil {
		if err := c.subscriber.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing entity subscriber")
		}
		c.subscriber = nil
	}
	if c.relayCancel != nil {
		c.relayCancel()
		select {
		case <-c.relayDone:
		case <-ctx.Done():
			logging.Warn().Msg("Location relay did not stop before shutdown deadline")
		}
		c.relayCancel = nil
	}
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing publisher")
		}
		c.publisher = nil
	}
	if c.natsConn != nil {
		c.natsConn.Close()
		c.natsConn = nil
	}
	if c.server != nil {
		if err := c.server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Error shutting down NATS server")
		}
		c.server = nil
	}
}

// IsRunning returns whether the relay is active.
func (c *NATSComponents) IsRunning() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
