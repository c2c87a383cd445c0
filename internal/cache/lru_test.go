// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLRU_IsDuplicate(t *testing.T) {
	t.Parallel()
	c := NewLRU(100, time.Minute)

	if c.IsDuplicate("key1") {
		t.Error("First occurrence should not be duplicate")
	}
	if !c.IsDuplicate("key1") {
		t.Error("Second occurrence should be duplicate")
	}
	if c.IsDuplicate("key2") {
		t.Error("Different key should not be duplicate")
	}

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 2 || size != 2 {
		t.Errorf("Stats = %d/%d/%d, want 1/2/2", hits, misses, size)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()
	c := NewLRU(3, time.Minute)

	c.IsDuplicate("a")
	c.IsDuplicate("b")
	c.IsDuplicate("c")

	// touching a makes b the least recently used
	c.IsDuplicate("a")
	c.IsDuplicate("d")

	if c.Contains("b") {
		t.Error("Expected 'b' to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if !c.Contains(k) {
			t.Errorf("Expected %q to be present", k)
		}
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	t.Parallel()
	clock := newClock()
	c := NewLRU(10, time.Minute)
	c.nowFunc = clock.Now

	c.IsDuplicate("a")
	clock.Advance(time.Minute)

	if c.Contains("a") {
		t.Error("Expected key 'a' to be expired")
	}
	if c.IsDuplicate("a") {
		t.Error("an expired key counts as new")
	}
}

func TestLRU_ForgetAndCleanup(t *testing.T) {
	t.Parallel()
	clock := newClock()
	c := NewLRU(10, time.Minute)
	c.nowFunc = clock.Now

	c.IsDuplicate("a")
	c.IsDuplicate("b")
	if !c.Forget("a") {
		t.Error("Forget should report a removed key")
	}
	if c.Forget("a") {
		t.Error("Forget of a missing key should report false")
	}

	clock.Advance(2 * time.Minute)
	c.IsDuplicate("fresh")
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired removed %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestLRU_Defaults(t *testing.T) {
	t.Parallel()
	c := NewLRU(0, 0)
	if c.capacity != 10000 || c.ttl != 5*time.Minute {
		t.Errorf("defaults = %d/%v", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()
	c := NewLRU(64, time.Minute)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.IsDuplicate(fmt.Sprintf("msg-%d", (w+i)%128))
			}
		}(w)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}
