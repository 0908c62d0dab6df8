// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"context"
	"time"

	"github.com/tomtom215/waypoint/internal/chat"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/recommend"
)

// Recommender serves direct recommendation requests.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// ChatRecommender serves chat-driven recommendation requests.
type ChatRecommender interface {
	RecommendChat(ctx context.Context, message, userID string) (*chat.Reply, error)
}

// Conversation serves the mode-routed, parse and short-answer endpoints.
type Conversation interface {
	Route(ctx context.Context, message, userID string) (*chat.RoutedReply, error)
	Parse(ctx context.Context, message string) (models.Intent, bool)
	Chat(ctx context.Context, message string) string
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and decoding helpers
//   - handlers_health.go: liveness and readiness probes
//   - handlers_recommend.go: direct recommendations
//   - handlers_ai.go: conversational endpoints
type Handler struct {
	recommender  Recommender
	orchestrator ChatRecommender
	conversation Conversation
	readiness    map[string]Pinger
	version      string
	startTime    time.Time
}

// HandlerDeps groups the collaborators of a Handler. Readiness maps a check
// name to the dependency the readiness probe pings.
type HandlerDeps struct {
	Recommender  Recommender
	Orchestrator ChatRecommender
	Conversation Conversation
	Readiness    map[string]Pinger
	Version      string
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		recommender:  deps.Recommender,
		orchestrator: deps.Orchestrator,
		conversation: deps.Conversation,
		readiness:    deps.Readiness,
		version:      version,
		startTime:    time.Now(),
	}
}
