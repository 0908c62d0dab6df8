// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

// Intent is the structured reading of one chat message.
type Intent struct {
	Intent       string                 `json:"intent"`
	Start        string                 `json:"start,omitempty"`
	End          string                 `json:"end,omitempty"`
	Destinations []string               `json:"destinations"`
	POIType      string                 `json:"poi_type,omitempty"`
	Preferences  map[string]interface{} `json:"preferences"`
	RawText      string                 `json:"raw_text"`
}

// GenericChatIntent is the degraded intent used when a message cannot be parsed.
func GenericChatIntent(text string) Intent {
	return Intent{
		Intent:       "chat",
		Destinations: []string{},
		Preferences:  map[string]interface{}{},
		RawText:      text,
	}
}

// Mode is the dispatcher's classification of a message.
type Mode string

const (
	ModeChat      Mode = "chat"
	ModeRecommend Mode = "recommend"
)

// ModeDecision is the classifier's verdict with its confidence in [0,1].
type ModeDecision struct {
	Mode       Mode    `json:"mode"`
	Confidence float64 `json:"confidence"`
}

// DefaultModeDecision is used whenever the classifier fails.
func DefaultModeDecision() ModeDecision {
	return ModeDecision{Mode: ModeChat, Confidence: 0.0}
}

// SelectedLocation is the compact recommendation shape returned by chat endpoints.
type SelectedLocation struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	District string  `json:"district,omitempty"`
	Score    float64 `json:"score"`
}
