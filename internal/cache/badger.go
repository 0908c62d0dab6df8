// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/waypoint/internal/logging"
)

// gcDiscardRatio is the value-log discard ratio passed to RunValueLogGC.
const gcDiscardRatio = 0.5

// Badger is a persistent cache backed by BadgerDB. Entry expiry uses
// Badger's native TTL, so expired entries are never read back.
type Badger struct {
	db         *badger.DB
	ttl        time.Duration
	gcInterval time.Duration
	inMemory   bool

	statsMu sync.RWMutex
	stats   Stats
}

// OpenBadger opens a Badger cache at path. An empty path runs Badger in memory.
func OpenBadger(path string, ttl, gcInterval time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs
	inMemory := path == ""
	if inMemory {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	return &Badger{
		db:         db,
		ttl:        ttl,
		gcInterval: gcInterval,
		inMemory:   inMemory,
		stats:      Stats{LastCleanup: time.Now()},
	}, nil
}

// Get returns the value if present and not expired.
func (c *Badger) Get(key string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Warn().Err(err).Str("component", "cache").Msg("Badger cache read failed")
		}
		c.record(func(s *Stats) { s.Misses++ })
		return nil, false
	}

	c.record(func(s *Stats) { s.Hits++ })
	return value, true
}

// Set stores a value with the default TTL.
func (c *Badger) Set(key string, value []byte) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL. Write failures are logged;
// a cache that cannot store simply misses next time.
func (c *Badger) SetWithTTL(key string, value []byte, ttl time.Duration) {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), value).WithTTL(ttl))
	})
	if err != nil {
		logging.Warn().Err(err).Str("component", "cache").Msg("Badger cache write failed")
	}
}

// Delete removes a value.
func (c *Badger) Delete(key string) {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		logging.Warn().Err(err).Str("component", "cache").Msg("Badger cache delete failed")
		return
	}
	c.record(func(s *Stats) { s.Evictions++ })
}

// Stats returns a snapshot of the counters. TotalKeys is read from Badger.
func (c *Badger) Stats() Stats {
	var total int64
	_ = c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			total++
		}
		return nil
	})

	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	s := c.stats
	s.TotalKeys = total
	return s
}

// Serve runs value-log garbage collection every gc interval until ctx is done.
func (c *Badger) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.runGC()
		}
	}
}

func (c *Badger) runGC() {
	if c.inMemory {
		c.record(func(s *Stats) { s.LastCleanup = time.Now() })
		return
	}
	for {
		err := c.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			logging.Warn().Err(err).Str("component", "cache").Msg("Badger value log GC failed")
			break
		}
	}
	c.record(func(s *Stats) { s.LastCleanup = time.Now() })
}

// Close closes the underlying database.
func (c *Badger) Close() error {
	return c.db.Close()
}

// String names the service in supervisor logs.
func (c *Badger) String() string {
	return "cache-badger"
}

func (c *Badger) record(update func(*Stats)) {
	c.statsMu.Lock()
	update(&c.stats)
	c.statsMu.Unlock()
}
