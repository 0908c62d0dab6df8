// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/waypoint/internal/models"
)

// Config tunes the ranking pipeline and recommendation service.
type Config struct {
	// DefaultMaxStops applies when a request does not set max_stops.
	DefaultMaxStops int `json:"default_max_stops"`

	// MaxStopsLimit caps max_stops regardless of what the request asks for.
	MaxStopsLimit int `json:"max_stops_limit"`

	// Concurrency is the maximum number of distance resolutions in flight
	// for a single ranking.
	Concurrency int `json:"concurrency"`

	// RequestTimeout is the request-level deadline for one recommendation.
	RequestTimeout time.Duration `json:"request_timeout"`

	// TransportMode is used when a request does not name one.
	TransportMode models.TransportMode `json:"transport_mode"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultMaxStops: 3,
		MaxStopsLimit:   50,
		Concurrency:     8,
		RequestTimeout:  30 * time.Second,
		TransportMode:   models.DefaultTransportMode,
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.DefaultMaxStops < 1 {
		return fmt.Errorf("default_max_stops must be at least 1, got %d", c.DefaultMaxStops)
	}
	if c.MaxStopsLimit < c.DefaultMaxStops {
		return fmt.Errorf("max_stops_limit (%d) must be >= default_max_stops (%d)", c.MaxStopsLimit, c.DefaultMaxStops)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", c.RequestTimeout)
	}
	if c.TransportMode != "" && !c.TransportMode.Valid() {
		return fmt.Errorf("unknown transport_mode %q", c.TransportMode)
	}
	return nil
}

// effectiveMaxStops applies the default and the cap.
func (c Config) effectiveMaxStops(requested int) int {
	n := requested
	if n <= 0 {
		n = c.DefaultMaxStops
	}
	if c.MaxStopsLimit > 0 && n > c.MaxStopsLimit {
		n = c.MaxStopsLimit
	}
	return n
}
