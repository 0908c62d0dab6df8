// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
Command server runs the Waypoint recommendation API.

	RootSupervisor ("waypoint")
	├── DataSupervisor ("data-layer")
	│   └── response cache maintenance
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: koanf (defaults, .env, YAML file, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: SQLite, PostgreSQL or MySQL; optional migration and YAML seed
 4. Locations: the catalog, or an Elasticsearch index when SEARCH_ENABLED
 5. Cache: memory or Badger, shared by routing and geocoding
 6. Providers: VietMap routing and geocoding, OpenAI-compatible model,
    each behind its own circuit breaker
 7. Ranking pipeline, recommendation service, chat orchestrator and router
 8. Chi router, then the supervisor tree

Every provider is optional. Without routing, distances are geodesic.
Without geocoding, requests must send start_point. Without a model, the
conversational endpoints answer with their configured fallbacks.

Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json
	DB_DRIVER=sqlite              # sqlite, postgres, mysql
	DATABASE_URL=file:waypoint.db
	DB_SEED_PATH=catalog.yaml
	CACHE_BACKEND=memory          # memory, badger
	VIETMAP_API_KEY=...
	LLM_BASE_URL=https://generativelanguage.googleapis.com/v1beta/openai
	GEMINI_API_KEY=...

SIGINT or SIGTERM drains in-flight requests for SHUTDOWN_TIMEOUT before exit.

@title Waypoint API
@version 1.0
@description Sightseeing recommendations ranked by distance, rating, popularity, category fit and review history, plus a conversational front-end.
@description
@description All responses use the envelope {status, data, error, metadata}.
@description Error codes: VALIDATION_ERROR, INVALID_JSON, USER_NOT_FOUND, START_NOT_FOUND, RECOMMENDATION_ERROR, CHAT_ERROR, RATE_LIMIT_EXCEEDED.

@contact.name GitHub Repository
@contact.url https://github.com/tomtom215/waypoint/issues

@license.name AGPL-3.0-or-later
@license.url https://www.gnu.org/licenses/agpl-3.0.html

@host localhost:8080
@BasePath /api/v1
@schemes http https

@tag.name Core
@tag.description Liveness and readiness probes
@tag.name Recommendations
@tag.description Ranked sightseeing stops for a traveller
@tag.name AI
@tag.description Conversational planning backed by a language model
*/
package main
