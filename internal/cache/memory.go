// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu              sync.RWMutex
	entries         map[string]entry
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time

	statsMu sync.RWMutex
	stats   Stats
}

// NewMemory creates an in-memory cache. Expired entries are swept by Serve.
func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{
		entries:         make(map[string]entry),
		ttl:             ttl,
		cleanupInterval: cleanupInterval,
		now:             time.Now,
		stats:           Stats{LastCleanup: time.Now()},
	}
}

// Get returns the value if present and not expired.
func (c *Memory) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.record(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && !c.now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		c.record(func(s *Stats) { s.Misses++; s.Evictions++ })
		return nil, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	return e.data, true
}

// Set stores a value with the default TTL.
func (c *Memory) Set(key string, value []byte) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL. The value is copied.
func (c *Memory) SetWithTTL(key string, value []byte, ttl time.Duration) {
	data := make([]byte, len(value))
	copy(data, value)

	c.mu.Lock()
	c.entries[key] = entry{data: data, expiresAt: c.now().Add(ttl)}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) { s.TotalKeys = total })
}

// Delete removes a value.
func (c *Memory) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) {
		if existed {
			s.Evictions++
		}
		s.TotalKeys = total
	})
}

// Stats returns a snapshot of the counters.
func (c *Memory) Stats() Stats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// Serve sweeps expired entries every cleanup interval until ctx is done.
func (c *Memory) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// Close drops every entry.
func (c *Memory) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	c.record(func(s *Stats) { s.TotalKeys = 0 })
	return nil
}

// String names the service in supervisor logs.
func (c *Memory) String() string {
	return "cache-memory"
}

func (c *Memory) cleanup() {
	now := c.now()

	c.mu.Lock()
	evictions := int64(0)
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			evictions++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.record(func(s *Stats) {
		s.Evictions += evictions
		s.TotalKeys = total
		s.LastCleanup = now
	})
}

func (c *Memory) record(update func(*Stats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}
