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

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2016, 7, 20, 12, 0, 0, 0, time.UTC)}
}

func TestTTL_BasicOperations(t *testing.T) {
	t.Parallel()
	c := NewTTL[string](time.Minute, 10)

	c.Set("a", "alpha")
	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Fatalf("Get(a) = %q, %v; want alpha, true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted key should miss")
	}
}

func TestTTL_Expiration(t *testing.T) {
	t.Parallel()
	clock := newClock()
	c := NewTTL[int](time.Minute, 10)
	c.nowFunc = clock.Now

	c.Set("a", 1)
	clock.Advance(59 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry should still be live")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("a"); ok {
		t.Fatal("entry should expire exactly at its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on Get, Len = %d", c.Len())
	}
}

func TestTTL_SetWithTTLOverridesDefault(t *testing.T) {
	t.Parallel()
	clock := newClock()
	c := NewTTL[int](time.Hour, 10)
	c.nowFunc = clock.Now

	c.SetWithTTL("short", 1, time.Second)
	c.Set("long", 2)
	clock.Advance(2 * time.Second)

	if _, ok := c.Get("short"); ok {
		t.Error("custom TTL should apply")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("default TTL should apply")
	}
}

func TestTTL_CapacitySweepsExpiredFirst(t *testing.T) {
	t.Parallel()
	clock := newClock()
	c := NewTTL[int](time.Minute, 2)
	c.nowFunc = clock.Now

	c.SetWithTTL("stale", 1, time.Second)
	c.Set("live", 2)
	clock.Advance(2 * time.Second)

	c.Set("new", 3)
	if _, ok := c.Get("live"); !ok {
		t.Error("live entry should survive when an expired one can be swept")
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("new entry should be stored")
	}
}

func TestTTL_CapacityEvictsSoonestExpiry(t *testing.T) {
	t.Parallel()
	clock := newClock()
	c := NewTTL[int](time.Minute, 2)
	c.nowFunc = clock.Now

	c.SetWithTTL("soon", 1, 10*time.Second)
	c.SetWithTTL("later", 2, time.Minute)
	c.Set("new", 3)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Get("soon"); ok {
		t.Error("entry closest to expiry should be evicted")
	}
	if _, ok := c.Get("later"); !ok {
		t.Error("later entry should remain")
	}
}

func TestTTL_OverwriteDoesNotEvict(t *testing.T) {
	t.Parallel()
	c := NewTTL[int](time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	if v, _ := c.Get("a"); v != 3 {
		t.Errorf("a = %d, want 3", v)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("overwriting an existing key must not evict another")
	}
}

func TestTTL_StatsAndHitRate(t *testing.T) {
	t.Parallel()
	c := NewTTL[int](time.Minute, 10)

	if c.HitRate() != 0 {
		t.Errorf("HitRate with no operations = %v, want 0", c.HitRate())
	}

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")
	c.Clear()

	stats := c.GetStats()
	if stats.Hits != 2 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 2/1", stats.Hits, stats.Misses)
	}
	if stats.Evictions != 1 || stats.TotalKeys != 0 {
		t.Errorf("evictions/keys = %d/%d, want 1/0", stats.Evictions, stats.TotalKeys)
	}
	if rate := c.HitRate(); rate < 66 || rate > 67 {
		t.Errorf("HitRate = %v, want about 66.7", rate)
	}
}

func TestTTL_Concurrency(t *testing.T) {
	t.Parallel()
	c := NewTTL[int](time.Minute, 50)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (w*200+i)%100)
				c.Set(key, i)
				c.Get(key)
			}
		}(w)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len = %d exceeds capacity 50", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type origin struct {
		Lat, Lon float64
	}

	a := GenerateKey("pokevision", origin{40.7, -73.9})
	b := GenerateKey("pokevision", origin{40.7, -73.9})
	c := GenerateKey("pokevision", origin{40.8, -73.9})
	d := GenerateKey("mobile", origin{40.7, -73.9})

	if a != b {
		t.Error("equal params should produce equal keys")
	}
	if a == c {
		t.Error("different params should produce different keys")
	}
	if a == d {
		t.Error("different methods should produce different keys")
	}

	unmarshalable := GenerateKey("x", make(chan int))
	if unmarshalable == "" {
		t.Error("unmarshalable params should fall back to a formatted key")
	}
}
