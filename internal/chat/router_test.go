// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package chat

import (
	"context"
	"testing"

	"github.com/tomtom215/waypoint/internal/llm"
	"github.com/tomtom215/waypoint/internal/models"
)

func newRouter(h *harness, classifier ModeClassifier) *Router {
	return NewRouter(DefaultConfig(), classifier, h.parser, h.generator, h.orch)
}

func TestRoute_RecommendWithoutUserAsksToIdentify(t *testing.T) {
	t.Parallel()

	h := newHarness(models.Intent{Intent: "find_places", Start: "Ben Thanh Market"}, nil)
	r := newRouter(h, fakeClassifier{decision: models.ModeDecision{Mode: models.ModeRecommend, Confidence: 0.9}})

	got, err := r.Route(context.Background(), "plan my afternoon", "  ")
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if got.Mode != models.ModeRecommend || got.Reply != DefaultReplies().ClarifyUser {
		t.Errorf("got %s %q, want recommend clarification", got.Mode, got.Reply)
	}
	if len(got.SelectedLocations) != 0 {
		t.Errorf("selected = %v, want empty", got.SelectedLocations)
	}
	if h.parser.calls.Load() != 0 || h.ranker.calls.Load() != 0 {
		t.Error("intent extraction and ranking must not run without a user")
	}
}

func TestRoute_RecommendDispatchesToOrchestrator(t *testing.T) {
	t.Parallel()

	h := newHarness(models.Intent{Intent: "find_places", Start: "Ben Thanh Market", POIType: "museum"}, nil)
	r := newRouter(h, fakeClassifier{decision: models.ModeDecision{Mode: models.ModeRecommend, Confidence: 0.8}})

	got, err := r.Route(context.Background(), "museums near Ben Thanh", "u-an")
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", got.Confidence)
	}
	if len(got.SelectedLocations) != 2 {
		t.Errorf("selected = %d, want 2", len(got.SelectedLocations))
	}
	if h.ranker.calls.Load() != 1 {
		t.Errorf("ranker calls = %d, want 1", h.ranker.calls.Load())
	}
}

func TestRoute_ClassifierFailureDefaultsToChat(t *testing.T) {
	t.Parallel()

	for _, err := range []error{errUpstream, &llm.ParseError{Raw: "recommend, I guess"}} {
		h := newHarness(models.Intent{}, nil)
		h.generator.reply = "Pho is best at breakfast."
		r := newRouter(h, fakeClassifier{decision: models.ModeDecision{Mode: models.ModeRecommend, Confidence: 1}, err: err})

		got, rerr := r.Route(context.Background(), "when do people eat pho?", "u-an")
		if rerr != nil {
			t.Fatalf("Route() error = %v", rerr)
		}
		if got.Mode != models.ModeChat || got.Confidence != 0 {
			t.Errorf("decision = %s/%v, want chat/0", got.Mode, got.Confidence)
		}
		if got.Reply != "Pho is best at breakfast." {
			t.Errorf("reply = %q", got.Reply)
		}
		if got.SelectedLocations == nil {
			t.Error("selected_locations must be an empty list, not null")
		}
	}
}

func TestRoute_NilClassifier(t *testing.T) {
	t.Parallel()

	h := newHarness(models.Intent{}, nil)
	got, err := newRouter(h, nil).Route(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if got.Mode != models.ModeChat {
		t.Errorf("mode = %s, want chat", got.Mode)
	}
}

func TestChat_Fallback(t *testing.T) {
	t.Parallel()

	h := newHarness(models.Intent{}, nil)
	h.generator.err = errUpstream
	r := newRouter(h, nil)

	if got := r.Chat(context.Background(), "hello"); got != DefaultReplies().ChatFallback {
		t.Errorf("Chat() = %q, want fallback", got)
	}

	custom := NewRouter(Config{Replies: Replies{ChatFallback: "Try later."}}, nil, nil, nil, nil)
	if got := custom.Chat(context.Background(), "hello"); got != "Try later." {
		t.Errorf("Chat() = %q, want configured fallback", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	h := newHarness(models.Intent{Intent: "find_places", Start: "Ben Thanh Market"}, nil)
	r := newRouter(h, nil)

	intent, degraded := r.Parse(context.Background(), "from Ben Thanh")
	if degraded || intent.Start != "Ben Thanh Market" {
		t.Errorf("Parse() = %+v degraded=%v", intent, degraded)
	}

	h.parser.err = &llm.ParseError{Raw: "??"}
	intent, degraded = r.Parse(context.Background(), "from Ben Thanh")
	if !degraded || intent.Intent != "chat" || intent.RawText != "from Ben Thanh" {
		t.Errorf("Parse() = %+v degraded=%v, want generic chat intent", intent, degraded)
	}
}
