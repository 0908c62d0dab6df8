// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultMaxStops != 3 {
		t.Errorf("Recommend.DefaultMaxStops = %d, want 3", cfg.Recommend.DefaultMaxStops)
	}
	if cfg.Routing.Timeout != 10*time.Second {
		t.Errorf("Routing.Timeout = %v, want 10s", cfg.Routing.Timeout)
	}
	if cfg.Chat.Replies.AskStart != DefaultAskStartReply {
		t.Errorf("Chat.Replies.AskStart = %q", cfg.Chat.Replies.AskStart)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DATABASE_URL", "database.dsn"},
		{"GEMINI_API_KEY", "llm.api_key"},
		{"LLM_API_KEY", "llm.api_key"},
		{"ELASTICSEARCH_URL", "search.addresses"},
		{"RECOMMEND_CONCURRENCY", "recommend.concurrency"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_REQUEST_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GEMINI_API_KEY", "gm-key")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.RequestTimeout != 5*time.Second {
		t.Errorf("Recommend.RequestTimeout = %v, want 5s", cfg.Recommend.RequestTimeout)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.LLM.APIKey != "gm-key" || !cfg.LLM.Configured() {
		t.Errorf("LLM config not applied: %+v", cfg.LLM)
	}
}

func TestLoadWithKoanfConfigFileAndEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: 7000
recommend:
  default_max_stops: 5
  max_stops_limit: 20
chat:
  replies:
    no_match: "Nothing nearby matched."
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_MAX_STOPS_LIMIT", "30")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from file", cfg.Server.Port)
	}
	if cfg.Recommend.DefaultMaxStops != 5 {
		t.Errorf("DefaultMaxStops = %d, want 5 from file", cfg.Recommend.DefaultMaxStops)
	}
	if cfg.Recommend.MaxStopsLimit != 30 {
		t.Errorf("MaxStopsLimit = %d, want 30 from env", cfg.Recommend.MaxStopsLimit)
	}
	if cfg.Chat.Replies.NoMatch != "Nothing nearby matched." {
		t.Errorf("Replies.NoMatch = %q", cfg.Chat.Replies.NoMatch)
	}
	if cfg.Chat.Replies.Apology != DefaultApologyReply {
		t.Errorf("Replies.Apology should keep its default, got %q", cfg.Chat.Replies.Apology)
	}
}

func TestSharedProviderEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
geocoding:
  api_key: "geo-specific"
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("VIETMAP_API_KEY", "shared-key")
	t.Setenv("VIETMAP_BASE_URL", "https://maps.example/api")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Routing.APIKey != "shared-key" {
		t.Errorf("Routing.APIKey = %q, want shared-key", cfg.Routing.APIKey)
	}
	if cfg.Geocoding.APIKey != "geo-specific" {
		t.Errorf("Geocoding.APIKey = %q, explicit value must win", cfg.Geocoding.APIKey)
	}
	if cfg.Routing.BaseURL != "https://maps.example/api" || cfg.Geocoding.BaseURL != "https://maps.example/api" {
		t.Errorf("base URLs not shared: %q %q", cfg.Routing.BaseURL, cfg.Geocoding.BaseURL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "WAYPOINT_DOTENV_PROBE=from-file\n")
	t.Setenv(DotEnvPathEnvVar, path)
	t.Setenv("WAYPOINT_DOTENV_PROBE", "")
	os.Unsetenv("WAYPOINT_DOTENV_PROBE")

	if err := loadDotEnv(); err != nil {
		t.Fatalf("loadDotEnv() error = %v", err)
	}
	if got := os.Getenv("WAYPOINT_DOTENV_PROBE"); got != "from-file" {
		t.Errorf("WAYPOINT_DOTENV_PROBE = %q, want from-file", got)
	}

	t.Setenv(DotEnvPathEnvVar, filepath.Join(t.TempDir(), "missing.env"))
	if err := loadDotEnv(); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }, "DB_DRIVER"},
		{"search without index", func(c *Config) { c.Search.Enabled = true; c.Search.Index = "" }, "ELASTICSEARCH_INDEX"},
		{"bad cache backend", func(c *Config) { c.Cache.Backend = "redis" }, "CACHE_BACKEND"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, "CACHE_TTL"},
		{"routing base url with query", func(c *Config) { c.Routing.BaseURL = "https://maps.example/api?x=1" }, "ROUTING_BASE_URL"},
		{"llm without model", func(c *Config) { c.LLM.Model = "" }, "LLM_MODEL"},
		{"limit below default", func(c *Config) { c.Recommend.MaxStopsLimit = 2 }, "RECOMMEND_MAX_STOPS_LIMIT"},
		{"zero concurrency", func(c *Config) { c.Recommend.Concurrency = 0 }, "RECOMMEND_CONCURRENCY"},
		{"bad transport mode", func(c *Config) { c.Recommend.TransportMode = "boat" }, "RECOMMEND_TRANSPORT_MODE"},
		{"empty reply", func(c *Config) { c.Chat.Replies.NoMatch = " " }, "no_match"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfiguredAndAddr(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.Routing.Configured() {
		t.Error("routing without an API key must not be configured")
	}
	cfg.Routing.APIKey = "k"
	if !cfg.Routing.Configured() {
		t.Error("routing with base URL and key should be configured")
	}
	cfg.Routing.Enabled = false
	if cfg.Routing.Configured() {
		t.Error("disabled routing must not be configured")
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
