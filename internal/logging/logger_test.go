// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)

	Init(Config{Level: "debug", Format: "json", Timestamp: true, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("component", "test").Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected output to contain level, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)

	SetLogger(NewTestLogger(&buf))
	logger := WithComponent("ranking")
	logger.Info().Msg("ranked")

	if !strings.Contains(buf.String(), `"component":"ranking"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains string
		absent   string
	}{
		{"apikey masked", "https://maps.example/route?apikey=s3cret&vehicle=car", "apikey=REDACTED", "s3cret"},
		{"case insensitive", "https://maps.example/search?ApiKey=s3cret", "REDACTED", "s3cret"},
		{"no secrets untouched", "https://maps.example/search?text=cafe", "text=cafe", "REDACTED"},
		{"password masked", "postgres://waypoint:hunter2@db:5432/waypoint", "waypoint:xxxxx@", "hunter2"},
		{"unparseable stripped", "http://bad host/x?apikey=s3cret", "http://", "s3cret"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := RedactURL(tt.input)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("RedactURL(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
			}
			if strings.Contains(got, tt.absent) {
				t.Errorf("RedactURL(%q) = %q, must not contain %q", tt.input, got, tt.absent)
			}
		})
	}
}

func TestRedactSecretAndTruncate(t *testing.T) {
	t.Parallel()

	if got := RedactSecret("Bearer abc123", "abc123"); got != "Bearer REDACTED" {
		t.Errorf("RedactSecret = %q", got)
	}
	if got := RedactSecret("unchanged", ""); got != "unchanged" {
		t.Errorf("RedactSecret with empty secret = %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("abc", 10); got != "abc" {
		t.Errorf("Truncate short = %q", got)
	}
}
