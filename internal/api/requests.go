// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import "github.com/tomtom215/waypoint/internal/models"

// RecommendChatRequest is the body of POST /ai/recommend-chat.
type RecommendChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	UserID  string `json:"user_id" validate:"required,max=128"`
}

// ChatRouterRequest is the body of POST /ai/chat-router. Without a user_id
// recommendation requests get a clarification reply.
type ChatRouterRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	UserID  string `json:"user_id,omitempty" validate:"max=128"`
}

// MessageRequest is the body of POST /ai/parse and POST /ai/chat.
type MessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ParseResponse is the data of POST /ai/parse.
type ParseResponse struct {
	Intent   models.Intent `json:"intent"`
	Degraded bool          `json:"degraded"`
}

// ChatResponse is the data of POST /ai/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}
