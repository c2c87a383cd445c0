// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

/*
Package supervisor runs the long-lived parts of spawnwatch under a suture v4
supervisor tree.

	RootSupervisor ("spawnwatch")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (duckdb backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   └── NATSComponentsService (if NATS_ENABLED)
	│       (the location relay and entity router run inside it)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's decaying failure counter:
every failure adds one, the count halves every FailureDecay seconds, and
crossing FailureThreshold pauses restarts for FailureBackoff.

Supervisor events are logged through sutureslog into an *slog.Logger. In
production that logger is logging.NewSlogLogger, so events end up in the
zerolog output next to everything else.

Service adapters for the individual components live in the services
subpackage.
*/
package supervisor
