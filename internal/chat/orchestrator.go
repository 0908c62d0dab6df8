// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/waypoint/internal/geocode"
	"github.com/tomtom215/waypoint/internal/llm"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/recommend"
	"github.com/tomtom215/waypoint/internal/store"
)

// State is a non-terminal step of the recommendation conversation.
type State string

const (
	StateReceived         State = "received"
	StateIntentParsed     State = "intent_parsed"
	StateStartResolved    State = "start_resolved"
	StateCandidatesLoaded State = "candidates_loaded"
	StateRanked           State = "ranked"
)

// Outcome is the terminal state a conversation ended in.
type Outcome string

const (
	OutcomeApology  Outcome = "apology"
	OutcomeAskStart Outcome = "ask_start"
	OutcomeNoMatch  Outcome = "no_match"
	OutcomeAnswered Outcome = "answered"
)

// IntentParser extracts a structured intent. A *llm.ParseError means the
// model answered with something that is not structured data.
type IntentParser interface {
	ParseIntent(ctx context.Context, text string) (models.Intent, error)
}

// ReplyGenerator writes natural-language replies.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, prompt string) (string, error)
}

// Ranker ranks candidate locations.
type Ranker interface {
	Rank(ctx context.Context, req recommend.RankRequest) ([]models.RankedRecommendation, error)
}

// Stores groups the catalog reads of the chat flow. Categories may be nil.
type Stores struct {
	Locations  store.LocationStore
	History    store.HistoryStore
	Categories store.CategoryStore
}

// Reply is the result of one chat-driven recommendation.
type Reply struct {
	Reply             string                    `json:"reply"`
	SelectedLocations []models.SelectedLocation `json:"selected_locations,omitempty"`

	// Outcome is the terminal state and State the last state reached before it.
	Outcome Outcome        `json:"-"`
	State   State          `json:"-"`
	Intent  *models.Intent `json:"-"`
}

// Orchestrator runs the chat-driven recommendation flow.
type Orchestrator struct {
	cfg       Config
	parser    IntentParser
	geocoder  geocode.Geocoder
	stores    Stores
	ranker    Ranker
	generator ReplyGenerator
}

// NewOrchestrator creates an Orchestrator. A nil geocoder means no start
// can be resolved; a nil generator returns the ranking summary as the reply.
func NewOrchestrator(cfg Config, parser IntentParser, geocoder geocode.Geocoder, stores Stores, ranker Ranker, generator ReplyGenerator) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg.withDefaults(),
		parser:    parser,
		geocoder:  geocoder,
		stores:    stores,
		ranker:    ranker,
		generator: generator,
	}
}

// RecommendChat answers a free-text request for places to visit. Degraded
// collaborators end the flow with a fixed reply; only a catalog or ranking
// failure is returned as an error.
func (o *Orchestrator) RecommendChat(ctx context.Context, message, userID string) (*Reply, error) {
	log := logging.Ctx(ctx)

	intent, err := o.parser.ParseIntent(ctx, message)
	if err != nil {
		var perr *llm.ParseError
		if errors.As(err, &perr) {
			log.Warn().Err(err).Msg("Intent not parseable, apologising")
			metrics.RecordLLMFallback("parse_intent", "parse_error")
			return o.finish(ctx, &Reply{Reply: o.cfg.Replies.Apology, Outcome: OutcomeApology, State: StateReceived}), nil
		}
		log.Warn().Err(err).Msg("Intent extraction unavailable, treating message as generic chat")
		metrics.RecordLLMFallback("parse_intent", "unavailable")
		intent = models.GenericChatIntent(message)
	}

	start, ok := o.resolveStart(ctx, intent.Start)
	if !ok {
		return o.finish(ctx, &Reply{Reply: o.cfg.Replies.AskStart, Outcome: OutcomeAskStart, State: StateIntentParsed, Intent: &intent}), nil
	}

	history := o.loadHistory(ctx, userID)
	candidates, err := o.stores.Locations.GetAll(ctx)
	if err != nil {
		metrics.RecordChatOutcome("recommend", "error")
		return nil, fmt.Errorf("load locations: %w", err)
	}

	prefs := DerivePreferences(intent, o.loadCategories(ctx))
	ranked, err := o.ranker.Rank(ctx, recommend.RankRequest{
		Candidates:  candidates,
		Origin:      start,
		Preferences: prefs,
		History:     history,
		MaxStops:    o.cfg.MaxStops,
		Mode:        o.cfg.TransportMode,
	})
	if err != nil {
		metrics.RecordChatOutcome("recommend", "error")
		return nil, fmt.Errorf("rank candidates: %w", err)
	}
	if len(ranked) == 0 {
		return o.finish(ctx, &Reply{Reply: o.cfg.Replies.NoMatch, Outcome: OutcomeNoMatch, State: StateCandidatesLoaded, Intent: &intent}), nil
	}

	summary := Summarize(ranked)
	selected := make([]models.SelectedLocation, len(ranked))
	for i := range ranked {
		selected[i] = ranked[i].Selected()
	}

	return o.finish(ctx, &Reply{
		Reply:             o.reply(ctx, message, summary),
		SelectedLocations: selected,
		Outcome:           OutcomeAnswered,
		State:             StateRanked,
		Intent:            &intent,
	}), nil
}

func (o *Orchestrator) resolveStart(ctx context.Context, name string) (models.Coordinate, bool) {
	name = strings.TrimSpace(name)
	if name == "" || o.geocoder == nil {
		return models.Coordinate{}, false
	}
	coord, err := o.geocoder.Geocode(ctx, name)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("start", name).Msg("Start location not resolved")
		return models.Coordinate{}, false
	}
	return coord, true
}

// loadHistory never fails the flow; a missing user or store error yields
// an empty history and a neutral history score.
func (o *Orchestrator) loadHistory(ctx context.Context, userID string) []models.UserHistoryEntry {
	if userID == "" || o.stores.History == nil {
		return nil
	}
	history, err := o.stores.History.GetHistory(ctx, userID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("History unavailable, scoring neutrally")
		return nil
	}
	return history
}

func (o *Orchestrator) loadCategories(ctx context.Context) []models.Category {
	if o.stores.Categories == nil {
		return nil
	}
	cats, err := o.stores.Categories.Categories(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Category catalog unavailable, using poi_type verbatim")
		return nil
	}
	return cats
}

func (o *Orchestrator) reply(ctx context.Context, message, summary string) string {
	if o.generator == nil {
		return summary
	}
	text, err := o.generator.GenerateReply(ctx, ReplyPrompt(message, summary))
	if err != nil || strings.TrimSpace(text) == "" {
		logging.Ctx(ctx).Warn().Err(err).Msg("Reply generation failed, returning summary")
		metrics.RecordLLMFallback("generate_reply", "unavailable")
		return summary
	}
	return strings.TrimSpace(text)
}

func (o *Orchestrator) finish(ctx context.Context, r *Reply) *Reply {
	metrics.RecordChatOutcome("recommend", string(r.Outcome))
	logging.Ctx(ctx).Debug().
		Str("outcome", string(r.Outcome)).
		Str("state", string(r.State)).
		Int("selected", len(r.SelectedLocations)).
		Msg("Chat recommendation finished")
	return r
}

// Summarize renders one "- name (score: x.xx)" line per recommendation.
func Summarize(ranked []models.RankedRecommendation) string {
	lines := make([]string, len(ranked))
	for i := range ranked {
		lines[i] = fmt.Sprintf("- %s (score: %.2f)", ranked[i].Name, ranked[i].Score.Total)
	}
	return strings.Join(lines, "\n")
}

// ReplyPrompt asks the assistant to present the ranked places.
func ReplyPrompt(message, summary string) string {
	return fmt.Sprintf("User asked: %s\n\nRecommended places:\n%s\n\n"+
		"Reply as a friendly local tour guide in 2-3 sentences, mentioning the places above.",
		message, summary)
}
