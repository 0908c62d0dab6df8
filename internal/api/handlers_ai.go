// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
)

// RecommendChat handles POST /api/v1/ai/recommend-chat.
//
// @Summary Recommend places from a chat message
// @Description Extracts the start location and preferences from free text, ranks nearby places and answers in natural language. Without a resolvable start it asks for one and selected_locations is omitted.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body RecommendChatRequest true "Chat message"
// @Success 200 {object} models.APIResponse{data=chat.Reply} "Reply with selected locations"
// @Failure 400 {object} models.APIResponse "INVALID_JSON or VALIDATION_ERROR"
// @Failure 500 {object} models.APIResponse "CHAT_ERROR"
// @Router /ai/recommend-chat [post]
func (h *Handler) RecommendChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), req.UserID)
	reply, err := h.orchestrator.RecommendChat(ctx, req.Message, req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeChat, "Failed to answer the message", err)
		return
	}
	respondSuccess(w, r, start, reply)
}

// ChatRouter handles POST /api/v1/ai/chat-router.
//
// @Summary Classify and answer a chat message
// @Description Decides between small talk and recommendations. Recommendation requests without a user_id get a clarification reply.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body ChatRouterRequest true "Chat message"
// @Success 200 {object} models.APIResponse{data=chat.RoutedReply} "Mode, reply and selected locations"
// @Failure 400 {object} models.APIResponse "INVALID_JSON or VALIDATION_ERROR"
// @Failure 500 {object} models.APIResponse "CHAT_ERROR"
// @Router /ai/chat-router [post]
func (h *Handler) ChatRouter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ChatRouterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	if req.UserID != "" {
		ctx = logging.ContextWithUserID(ctx, req.UserID)
	}
	reply, err := h.conversation.Route(ctx, req.Message, req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeChat, "Failed to answer the message", err)
		return
	}
	respondSuccess(w, r, start, reply)
}

// Parse handles POST /api/v1/ai/parse.
//
// @Summary Extract the travel intent of a message
// @Description Returns the structured intent. When the language model is unavailable or answers unstructured text, a generic chat intent is returned with degraded=true.
// @Tags AI
// @Accept json
// @Produce json
// @Param request body MessageRequest true "Chat message"
// @Success 200 {object} models.APIResponse{data=ParseResponse} "Parsed intent"
// @Failure 400 {object} models.APIResponse "INVALID_JSON or VALIDATION_ERROR"
// @Router /ai/parse [post]
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req MessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	intent, degraded := h.conversation.Parse(r.Context(), req.Message)
	respondSuccess(w, r, start, ParseResponse{Intent: intent, Degraded: degraded})
}

// Chat handles POST /api/v1/ai/chat.
//
// @Summary Short assistant answer
// @Tags AI
// @Accept json
// @Produce json
// @Param request body MessageRequest true "Chat message"
// @Success 200 {object} models.APIResponse{data=ChatResponse} "Assistant reply"
// @Failure 400 {object} models.APIResponse "INVALID_JSON or VALIDATION_ERROR"
// @Router /ai/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req MessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	respondSuccess(w, r, start, ChatResponse{Reply: h.conversation.Chat(r.Context(), req.Message)})
}
