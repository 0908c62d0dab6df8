// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
)

// ParseError is returned when model output is not a JSON object.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not structured data: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Assistant implements the conversational operations over a Completer.
type Assistant struct {
	completer Completer
}

// NewAssistant creates an Assistant.
func NewAssistant(c Completer) *Assistant {
	return &Assistant{completer: c}
}

// ParseIntent extracts a structured Intent from a chat message. Malformed
// model output yields a *ParseError; transport failures are returned wrapped.
func (a *Assistant) ParseIntent(ctx context.Context, text string) (models.Intent, error) {
	out, err := a.completer.Complete(ctx, intentSystemPrompt, fmt.Sprintf("User message:\n\"\"\"%s\"\"\"\n\nReturn JSON:", text))
	if err != nil {
		return models.Intent{}, fmt.Errorf("parse intent: %w", err)
	}

	obj, err := decodeObject(out)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("output", logging.Truncate(out, 200)).
			Msg("Intent extraction returned unstructured output")
		return models.Intent{}, err
	}

	intent := models.Intent{
		Intent:       stringField(obj, "intent"),
		Start:        stringField(obj, "start"),
		End:          stringField(obj, "end"),
		Destinations: stringList(obj["destinations"]),
		POIType:      stringField(obj, "poi_type"),
		Preferences:  map[string]interface{}{},
		RawText:      stringField(obj, "raw_text"),
	}
	if prefs, ok := obj["preferences"].(map[string]interface{}); ok {
		intent.Preferences = prefs
	}
	if intent.RawText == "" {
		intent.RawText = text
	}
	return intent, nil
}

// ClassifyMode decides between recommend and chat. Unknown modes become
// chat, a missing confidence reads as 0.5 and confidence is clamped to [0,1].
func (a *Assistant) ClassifyMode(ctx context.Context, text string) (models.ModeDecision, error) {
	out, err := a.completer.Complete(ctx, classifierSystemPrompt, fmt.Sprintf("User message:\n\"\"\"%s\"\"\"", text))
	if err != nil {
		return models.DefaultModeDecision(), fmt.Errorf("classify mode: %w", err)
	}

	obj, err := decodeObject(out)
	if err != nil {
		return models.DefaultModeDecision(), err
	}

	decision := models.ModeDecision{Mode: models.ModeChat, Confidence: 0.5}
	if models.Mode(stringField(obj, "mode")) == models.ModeRecommend {
		decision.Mode = models.ModeRecommend
	}
	if v, ok := obj["confidence"]; ok {
		c, ok := toFloat(v)
		if !ok {
			return models.DefaultModeDecision(), &ParseError{Raw: out, Err: fmt.Errorf("confidence %v is not a number", v)}
		}
		decision.Confidence = clamp01(c)
	}
	return decision, nil
}

// GenerateReply answers a prompt as the tourism assistant.
func (a *Assistant) GenerateReply(ctx context.Context, prompt string) (string, error) {
	out, err := a.completer.Complete(ctx, assistantSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return out, nil
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// ExtractJSON strips markdown fences around model output. It returns the
// first fenced block, else the span from the first '{' to the last '}'.
func ExtractJSON(out string) string {
	text := strings.TrimSpace(out)
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func decodeObject(out string) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(ExtractJSON(out)), &obj); err != nil {
		return nil, &ParseError{Raw: out, Err: err}
	}
	if obj == nil {
		return nil, &ParseError{Raw: out, Err: errors.New("null object")}
	}
	return obj, nil
}

func stringField(obj map[string]interface{}, key string) string {
	switch v := obj[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func stringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
