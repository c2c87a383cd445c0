// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package cache

import (
	"sync"
	"time"
)

type lruNode struct {
	key       string
	prev      *lruNode
	next      *lruNode
	expiresAt time.Time
}

// LRU is a bounded, thread-safe set of recently seen keys with TTL.
//
// Operations are O(1): a map finds nodes and a doubly linked list between two
// sentinels orders them. head.next is the most recently used key and
// tail.prev the least.
type LRU struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*lruNode
	head     *lruNode
	tail     *lruNode

	hits   int64
	misses int64

	// nowFunc is replaceable in tests
	nowFunc func() time.Time
}

// NewLRU creates a set holding at most capacity keys for ttl each.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &LRU{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruNode, capacity),
		head:     &lruNode{},
		tail:     &lruNode{},
		nowFunc:  time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// IsDuplicate reports whether key was recorded within the TTL. A key that was
// not seen is recorded, so the second call with the same key returns true.
func (c *LRU) IsDuplicate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	if n, ok := c.items[key]; ok {
		if now.Before(n.expiresAt) {
			c.moveToFront(n)
			c.hits++
			return true
		}
		c.remove(n)
	}

	n := &lruNode{key: key, expiresAt: now.Add(c.ttl)}
	c.addToFront(n)
	c.items[key] = n
	for len(c.items) > c.capacity {
		c.remove(c.tail.prev)
	}

	c.misses++
	return false
}

// Contains reports whether key is recorded and unexpired without touching
// its recency.
func (c *LRU) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.items[key]
	return ok && c.nowFunc().Before(n.expiresAt)
}

// Forget removes key so its next occurrence is treated as new.
func (c *LRU) Forget(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.items[key]; ok {
		c.remove(n)
		return true
	}
	return false
}

// Len returns the current number of recorded keys.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired removes all expired keys and returns how many were removed.
func (c *LRU) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	removed := 0
	for n := c.tail.prev; n != c.head; {
		prev := n.prev
		if !now.Before(n.expiresAt) {
			c.remove(n)
			removed++
		}
		n = prev
	}
	return removed
}

// Stats returns duplicate hits, first sightings and the current size.
func (c *LRU) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// list helpers, called with the lock held

func (c *LRU) addToFront(n *lruNode) {
	n.prev = c.head
	n.next = c.head.next
	c.head.next.prev = n
	c.head.next = n
}

func (c *LRU) moveToFront(n *lruNode) {
	n.prev.next = n.next
	n.next.prev = n.prev
	c.addToFront(n)
}

func (c *LRU) remove(n *lruNode) {
	if n == c.head || n == c.tail {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	delete(c.items, n.key)
}
