// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package recommend scores and ranks candidate sightseeing stops for a
// traveller standing at a start coordinate.
//
// # Architecture
//
//   - Score: a fixed weighted sum of five normalized components (distance,
//     rating, category match, popularity, history).
//   - Pipeline: resolves every candidate's travel distance concurrently,
//     scores it, sorts descending by total and truncates to max_stops.
//   - Service: the direct recommendation flow. It resolves the start point,
//     checks the user, loads history and candidates, then ranks.
//
// # Design Principles
//
//   - Deterministic: the sort is stable, so equal totals keep input order and
//     identical inputs always yield identical output.
//   - Bounded: distance resolution fans out to at most Config.Concurrency
//     outstanding provider calls per request.
//   - All-or-nothing deadlines: if the request deadline expires before every
//     distance is resolved, all distances are recomputed geodesically so the
//     ordering never mixes sources from a partial result.
//
// # Usage
//
//	pipeline := recommend.NewPipeline(routing.NewResolver(routeClient), cfg)
//	recs, err := pipeline.Rank(ctx, recommend.RankRequest{
//	    Candidates:  locations,
//	    Origin:      start,
//	    Preferences: prefs,
//	    History:     history,
//	    MaxStops:    3,
//	})
//
// # Thread Safety
//
// Pipeline and Service hold no mutable state and are safe for concurrent use.
package recommend
