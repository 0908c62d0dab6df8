// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/waypoint/internal/llm"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// ModeClassifier decides whether a message asks for recommendations.
type ModeClassifier interface {
	ClassifyMode(ctx context.Context, text string) (models.ModeDecision, error)
}

// RoutedReply is the result of a mode-routed chat message.
type RoutedReply struct {
	Mode              models.Mode               `json:"mode"`
	Confidence        float64                   `json:"confidence"`
	Reply             string                    `json:"reply"`
	SelectedLocations []models.SelectedLocation `json:"selected_locations"`
}

// Router dispatches messages between small talk and recommendations.
type Router struct {
	cfg          Config
	classifier   ModeClassifier
	parser       IntentParser
	generator    ReplyGenerator
	orchestrator *Orchestrator
}

// NewRouter creates a Router. Nil collaborators degrade to their fallbacks.
func NewRouter(cfg Config, classifier ModeClassifier, parser IntentParser, generator ReplyGenerator, orchestrator *Orchestrator) *Router {
	return &Router{
		cfg:          cfg.withDefaults(),
		classifier:   classifier,
		parser:       parser,
		generator:    generator,
		orchestrator: orchestrator,
	}
}

// Route classifies message and answers it. A recommend request without a
// user id gets a clarification reply and no intent or ranking work.
func (r *Router) Route(ctx context.Context, message, userID string) (*RoutedReply, error) {
	decision := r.classify(ctx, message)
	metrics.RecordModeDecision(string(decision.Mode))

	out := &RoutedReply{
		Mode:              decision.Mode,
		Confidence:        decision.Confidence,
		SelectedLocations: []models.SelectedLocation{},
	}

	if decision.Mode == models.ModeRecommend {
		if strings.TrimSpace(userID) == "" || r.orchestrator == nil {
			metrics.RecordChatOutcome("router", "clarify_user")
			out.Reply = r.cfg.Replies.ClarifyUser
			return out, nil
		}

		reply, err := r.orchestrator.RecommendChat(ctx, message, userID)
		if err != nil {
			return nil, err
		}
		out.Reply = reply.Reply
		if reply.SelectedLocations != nil {
			out.SelectedLocations = reply.SelectedLocations
		}
		return out, nil
	}

	out.Reply = r.Chat(ctx, message)
	return out, nil
}

func (r *Router) classify(ctx context.Context, message string) models.ModeDecision {
	if r.classifier == nil {
		return models.DefaultModeDecision()
	}
	decision, err := r.classifier.ClassifyMode(ctx, message)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Mode classification failed, defaulting to chat")
		metrics.RecordLLMFallback("classify_mode", fallbackReason(err))
		return models.DefaultModeDecision()
	}
	return decision
}

// Chat returns a short assistant answer, or the fallback text when the
// language model is unavailable.
func (r *Router) Chat(ctx context.Context, message string) string {
	if r.generator == nil {
		return r.cfg.Replies.ChatFallback
	}
	text, err := r.generator.GenerateReply(ctx, message)
	if err != nil || strings.TrimSpace(text) == "" {
		logging.Ctx(ctx).Warn().Err(err).Msg("Chat reply unavailable")
		metrics.RecordLLMFallback("chat", "unavailable")
		return r.cfg.Replies.ChatFallback
	}
	metrics.RecordChatOutcome("chat", "answered")
	return strings.TrimSpace(text)
}

// Parse extracts the intent of message. Any failure yields the generic chat
// intent and degraded = true.
func (r *Router) Parse(ctx context.Context, message string) (intent models.Intent, degraded bool) {
	if r.parser == nil {
		return models.GenericChatIntent(message), true
	}
	intent, err := r.parser.ParseIntent(ctx, message)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Intent extraction degraded")
		metrics.RecordLLMFallback("parse_intent", fallbackReason(err))
		return models.GenericChatIntent(message), true
	}
	return intent, false
}

func fallbackReason(err error) string {
	var perr *llm.ParseError
	if errors.As(err, &perr) {
		return "parse_error"
	}
	return "unavailable"
}
