// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package models defines the typed records shared by the ranking pipeline,
// the conversation orchestrator, the catalog stores and the HTTP layer.
//
// Coordinates have a single canonical shape ({"lat","lng"}); the alternative
// {"latitude","longitude"} shape is translated during JSON decoding so that
// business logic only ever sees Coordinate values.
package models
