// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package cache stores upstream provider responses (routes, geocodes) keyed
// by normalized request parameters with an explicit TTL.
//
// Caches are constructed at startup and injected into the clients that use
// them. Expired entries are never returned. Background maintenance (expiry
// sweeps, value-log GC) runs through Serve so the supervisor tree owns its
// lifecycle.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Cacher is a byte-oriented TTL cache.
type Cacher interface {
	// Get returns the value and true if present and not expired.
	Get(key string) ([]byte, bool)

	// Set stores a value with the default TTL.
	Set(key string, value []byte)

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value []byte, ttl time.Duration)

	// Delete removes a value.
	Delete(key string)

	// Stats returns a snapshot of hit/miss counters.
	Stats() Stats

	// Serve runs background maintenance until ctx is cancelled.
	Serve(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// Stats holds cache statistics.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// HitRate returns the hit rate as a percentage (0-100).
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config selects and tunes a cache backend.
type Config struct {
	Backend string
	TTL     time.Duration
	// Path is the Badger directory; empty runs Badger in memory.
	Path string
	// CleanupInterval is how often expired entries are swept (memory) or
	// the value log is garbage collected (badger).
	CleanupInterval time.Duration
}

// New creates the configured cache backend.
func New(cfg Config) (Cacher, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(cfg.TTL, cfg.CleanupInterval), nil
	case BackendBadger:
		return OpenBadger(cfg.Path, cfg.TTL, cfg.CleanupInterval)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// GenerateKey builds a deterministic key from a namespace and the request
// parameters (sha256 of their JSON encoding).
//
//	key := cache.GenerateKey("route", routeKey{Origin: o, Destination: d, Mode: "car"})
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}

// GetJSON decodes a cached JSON value into out. It reports false on a miss
// or when the stored bytes do not decode, in which case the entry is dropped.
func GetJSON(c Cacher, key string, out interface{}) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.Delete(key)
		return false
	}
	return true
}

// SetJSON encodes v as JSON and stores it with the default TTL.
func SetJSON(c Cacher, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	c.Set(key, data)
	return nil
}
