// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package database

import (
	"sync"

	"github.com/tomtom215/spawnwatch/internal/models"
)

// acquireRowLock acquires the mutex for one entity identity.
// Locks are keyed by kind and id, so identities never share a lock.
func (db *DB) acquireRowLock(kind models.Kind, id string) *sync.Mutex {
	key := string(kind) + ":" + id
	muInterface, _ := db.rowLocks.LoadOrStore(key, &sync.Mutex{})
	mu, ok := muInterface.(*sync.Mutex)
	if !ok {
		mu = &sync.Mutex{}
		db.rowLocks.Store(key, mu)
	}
	mu.Lock()
	return mu
}

// releaseRowLock releases a mutex returned by acquireRowLock
func (db *DB) releaseRowLock(mu *sync.Mutex) {
	mu.Unlock()
}
