// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package config loads Waypoint configuration.
//
// Loading order (later layers override earlier ones):
//  1. Built-in defaults (defaultConfig)
//  2. An optional .env file, exported into the process environment
//  3. An optional YAML file (CONFIG_PATH, config.yaml, /etc/waypoint/config.yaml)
//  4. Environment variables mapped through envTransformFunc
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Search    SearchConfig    `koanf:"search"`
	Cache     CacheConfig     `koanf:"cache"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Routing   RoutingConfig   `koanf:"routing"`
	Geocoding GeocodingConfig `koanf:"geocoding"`
	LLM       LLMConfig       `koanf:"llm"`
	Recommend RecommendConfig `koanf:"recommend"`
	Chat      ChatConfig      `koanf:"chat"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatabaseConfig selects the relational catalog backend.
type DatabaseConfig struct {
	// Driver is one of sqlite, postgres, mysql.
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	// Migrate creates the schema at startup when true.
	Migrate bool `koanf:"migrate"`
	// SeedPath points to a YAML catalog loaded at startup (optional).
	SeedPath string `koanf:"seed_path"`
}

// SearchConfig enables serving the location catalog from Elasticsearch.
type SearchConfig struct {
	Enabled   bool     `koanf:"enabled"`
	Addresses []string `koanf:"addresses"`
	Index     string   `koanf:"index"`
	Username  string   `koanf:"username"`
	Password  string   `koanf:"password"`
	PageSize  int      `koanf:"page_size"`
}

// CacheConfig configures the upstream response cache.
type CacheConfig struct {
	// Backend is memory or badger.
	Backend string        `koanf:"backend"`
	TTL     time.Duration `koanf:"ttl"`
	// Path is the Badger directory; empty runs Badger in memory.
	Path            string        `koanf:"path"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// BreakerConfig tunes the circuit breakers in front of every upstream provider.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// RoutingConfig configures the road-distance provider.
type RoutingConfig struct {
	Enabled bool          `koanf:"enabled"`
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// GeocodingConfig configures the place-name geocoder.
type GeocodingConfig struct {
	Enabled    bool          `koanf:"enabled"`
	BaseURL    string        `koanf:"base_url"`
	APIKey     string        `koanf:"api_key"`
	Timeout    time.Duration `koanf:"timeout"`
	MaxResults int           `koanf:"max_results"`
}

// LLMConfig configures the OpenAI-compatible chat completion endpoint.
type LLMConfig struct {
	Enabled           bool          `koanf:"enabled"`
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	Temperature       float64       `koanf:"temperature"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// RecommendConfig tunes the ranking pipeline.
type RecommendConfig struct {
	DefaultMaxStops int           `koanf:"default_max_stops"`
	MaxStopsLimit   int           `koanf:"max_stops_limit"`
	Concurrency     int           `koanf:"concurrency"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	TransportMode   string        `koanf:"transport_mode"`
}

// ChatConfig tunes the conversational front-end.
type ChatConfig struct {
	MaxStops int           `koanf:"max_stops"`
	Replies  RepliesConfig `koanf:"replies"`
}

// RepliesConfig holds the fixed texts returned on degraded paths.
type RepliesConfig struct {
	Apology      string `koanf:"apology"`
	AskStart     string `koanf:"ask_start"`
	NoMatch      string `koanf:"no_match"`
	ClarifyUser  string `koanf:"clarify_user"`
	ChatFallback string `koanf:"chat_fallback"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
