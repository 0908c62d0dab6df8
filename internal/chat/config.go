// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package chat

import (
	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/models"
)

// Replies are the fixed texts returned on degraded paths.
type Replies struct {
	Apology      string
	AskStart     string
	NoMatch      string
	ClarifyUser  string
	ChatFallback string
}

// DefaultReplies returns the English defaults.
func DefaultReplies() Replies {
	return Replies{
		Apology:      config.DefaultApologyReply,
		AskStart:     config.DefaultAskStartReply,
		NoMatch:      config.DefaultNoMatchReply,
		ClarifyUser:  config.DefaultClarifyUserReply,
		ChatFallback: config.DefaultChatFallbackReply,
	}
}

// Config tunes the conversational flows.
type Config struct {
	// MaxStops is the number of stops a chat recommendation returns.
	MaxStops int

	// TransportMode is the routing profile for chat recommendations.
	TransportMode models.TransportMode

	Replies Replies
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxStops:      3,
		TransportMode: models.DefaultTransportMode,
		Replies:       DefaultReplies(),
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxStops < 1 {
		c.MaxStops = d.MaxStops
	}
	if c.TransportMode == "" {
		c.TransportMode = d.TransportMode
	}
	fill := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	fill(&c.Replies.Apology, d.Replies.Apology)
	fill(&c.Replies.AskStart, d.Replies.AskStart)
	fill(&c.Replies.NoMatch, d.Replies.NoMatch)
	fill(&c.Replies.ClarifyUser, d.Replies.ClarifyUser)
	fill(&c.Replies.ChatFallback, d.Replies.ChatFallback)
	return c
}
