// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package main

import (
	"github.com/tomtom215/spawnwatch/internal/logging"
	"github.com/tomtom215/spawnwatch/internal/supervisor"
	"github.com/tomtom215/spawnwatch/internal/supervisor/services"
)

// AddNATSToSupervisor adds the relay to the messaging layer. It is a no-op
// when natsComponents is nil.
func AddNATSToSupervisor(tree *supervisor.SupervisorTree, natsComponents *NATSComponents) {
	if natsComponents == nil {
		return
	}
	tree.AddMessagingService(services.NewNATSComponentsService(natsComponents))
	logging.Info().Msg("NATS relay added to supervisor tree (messaging layer)")
}
