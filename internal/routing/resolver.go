// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package routing resolves travel distances between coordinates.
//
// The Resolver asks a RouteProvider for the road distance and falls back to
// the great-circle distance on any failure, so resolution always produces a
// value for valid coordinates. Each call is independent and safe for
// concurrent use.
package routing

import (
	"context"
	"errors"
	"math"

	"github.com/tomtom215/waypoint/internal/geo"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

var (
	// ErrUnavailable means the provider could not be reached or refused the call.
	ErrUnavailable = errors.New("routing provider unavailable")

	// ErrNoDistance means the provider answered without a usable distance.
	ErrNoDistance = errors.New("routing response has no usable distance")
)

// RouteProvider returns the travel distance in kilometres for mode.
type RouteProvider interface {
	Route(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) (float64, error)
}

// Distance is a resolved distance and where it came from.
type Distance struct {
	Km     float64
	Source models.DistanceSource
}

// Resolver implements routed-then-geodesic distance resolution.
type Resolver struct {
	provider RouteProvider
}

// NewResolver creates a Resolver. A nil provider resolves geodesically only.
func NewResolver(provider RouteProvider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve returns the routed distance when the provider yields a usable
// positive value, otherwise the haversine distance.
func (r *Resolver) Resolve(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) Distance {
	if r != nil && r.provider != nil && ctx.Err() == nil {
		km, err := r.provider.Route(ctx, origin, destination, mode.OrDefault())
		if err == nil && usable(km) {
			metrics.RecordDistanceResolution(string(models.SourceRouted))
			return Distance{Km: km, Source: models.SourceRouted}
		}
		if err == nil {
			err = ErrNoDistance
		}
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("origin", origin.String()).
			Str("destination", destination.String()).
			Msg("Routed distance unavailable, using geodesic")
	}

	d := r.Geodesic(origin, destination)
	metrics.RecordDistanceResolution(string(d.Source))
	return d
}

// Geodesic returns the great-circle distance without contacting the provider.
func (r *Resolver) Geodesic(origin, destination models.Coordinate) Distance {
	return Distance{Km: geo.Haversine(origin, destination), Source: models.SourceGeodesic}
}

func usable(km float64) bool {
	return km > 0 && !math.IsNaN(km) && !math.IsInf(km, 0)
}
