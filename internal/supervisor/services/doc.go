// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package services adapts components with blocking lifecycles to
// suture.Service so the supervisor tree can start, restart and drain them.
//
// Components that already expose Serve(ctx) error, such as the response
// caches, are added to the tree directly and need no wrapper here.
package services
