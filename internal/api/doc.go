// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Package api exposes Waypoint over HTTP.

Routes are served by a chi router:

	GET  /api/v1/health/live         liveness probe
	GET  /api/v1/health/ready        readiness probe (catalog store reachable)
	GET  /metrics                    Prometheus metrics
	GET  /swagger/*                  OpenAPI UI
	POST /api/v1/recommendations     direct route-aware recommendations
	POST /api/v1/ai/recommend-chat   chat-driven recommendations
	POST /api/v1/ai/chat-router      mode-routed chat
	POST /api/v1/ai/parse            intent extraction only
	POST /api/v1/ai/chat             short assistant answer

Every response uses the models.APIResponse envelope. Request bodies are
decoded with goccy/go-json and validated with go-playground/validator
before any collaborator is called; malformed JSON is INVALID_JSON and
failed validation is VALIDATION_ERROR, both 400.

Upstream failures never surface here. The routing, geocoding and language
model collaborators degrade inside the recommend and chat packages, so the
only 5xx responses are catalog failures.
*/
package api
