// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/routing"
)

// ErrInvalidMaxStops is returned when a ranking asks for fewer than one stop.
var ErrInvalidMaxStops = errors.New("max_stops must be at least 1")

// DistanceResolver is the subset of routing.Resolver the pipeline needs.
type DistanceResolver interface {
	Resolve(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) routing.Distance
	Geodesic(origin, destination models.Coordinate) routing.Distance
}

// RankRequest carries everything one ranking needs.
type RankRequest struct {
	Candidates  []models.Location
	Origin      models.Coordinate
	Preferences models.Preferences
	History     []models.UserHistoryEntry
	MaxStops    int
	Mode        models.TransportMode
}

// Pipeline resolves, scores, sorts and truncates candidates.
type Pipeline struct {
	resolver    DistanceResolver
	concurrency int
}

// NewPipeline creates a Pipeline. Concurrency below one is treated as one.
func NewPipeline(resolver DistanceResolver, cfg Config) *Pipeline {
	n := cfg.Concurrency
	if n < 1 {
		n = 1
	}
	return &Pipeline{resolver: resolver, concurrency: n}
}

// Rank returns at most req.MaxStops recommendations ordered by total score
// descending. Equal totals keep candidate order. An empty candidate list
// yields an empty, non-nil slice.
//
// If ctx expires before every distance resolves, all distances are
// recomputed geodesically and ranking completes with those.
func (p *Pipeline) Rank(ctx context.Context, req RankRequest) ([]models.RankedRecommendation, error) {
	if req.MaxStops < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidMaxStops, req.MaxStops)
	}

	start := time.Now()
	if len(req.Candidates) == 0 {
		metrics.RecordRanking("empty", 0, time.Since(start))
		return []models.RankedRecommendation{}, nil
	}

	distances := p.resolveAll(ctx, req)
	outcome := "ok"
	if ctx.Err() != nil {
		outcome = "deadline"
		logging.Ctx(ctx).Warn().
			Int("candidates", len(req.Candidates)).
			Msg("Ranking deadline reached, using geodesic distances for all candidates")
		for i := range req.Candidates {
			distances[i] = p.resolver.Geodesic(req.Origin, req.Candidates[i].Coordinate)
		}
	}

	ranked := make([]models.RankedRecommendation, len(req.Candidates))
	for i := range req.Candidates {
		ranked[i] = buildRecommendation(&req.Candidates[i], distances[i], req)
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score.Total > ranked[b].Score.Total
	})
	if len(ranked) > req.MaxStops {
		ranked = ranked[:req.MaxStops]
	}

	metrics.RecordRanking(outcome, len(req.Candidates), time.Since(start))
	return ranked, nil
}

// resolveAll resolves every candidate with at most p.concurrency calls in
// flight. Results are written by index so input order is preserved.
func (p *Pipeline) resolveAll(ctx context.Context, req RankRequest) []routing.Distance {
	distances := make([]routing.Distance, len(req.Candidates))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i := range req.Candidates {
		i := i
		g.Go(func() error {
			distances[i] = p.resolver.Resolve(ctx, req.Origin, req.Candidates[i].Coordinate, req.Mode)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	return distances
}

func buildRecommendation(loc *models.Location, d routing.Distance, req RankRequest) models.RankedRecommendation {
	rec := models.RankedRecommendation{
		LocationID: loc.ID,
		Name:       loc.DisplayName(),
		District:   loc.District,
		Coordinate: loc.Coordinate,
		Categories: loc.Categories,
		Score:      Score(loc, d.Km, req.Preferences, req.History),
	}
	if rec.Categories == nil {
		rec.Categories = []string{}
	}
	if !math.IsNaN(d.Km) && !math.IsInf(d.Km, 0) {
		km := d.Km
		rec.DistanceKm = &km
		rec.DistanceSource = d.Source
	}
	return rec
}
