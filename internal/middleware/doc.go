// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package middleware provides HTTP middleware shared by every route.

Key Components:

  - RequestID: UUID-based request tracking. The id is echoed in the
    X-Request-ID response header and attached to the logging context
    together with a fresh correlation id.
  - PrometheusMetrics: request count, duration and in-flight gauge labelled
    by chi route pattern, so path parameters do not explode cardinality.

Both use the http.HandlerFunc form and are adapted for chi with a one-line
wrapper in the api package:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
