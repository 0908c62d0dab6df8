// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateDatabase,
		c.validateSearch,
		c.validateCache,
		c.validateBreaker,
		c.validateProviders,
		c.validateRecommend,
		c.validateChat,
		c.validateSecurity,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite, postgres or mysql, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database connection limits must not be negative")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if !c.Search.Enabled {
		return nil
	}
	if len(c.Search.Addresses) == 0 {
		return fmt.Errorf("ELASTICSEARCH_URL is required when SEARCH_ENABLED=true")
	}
	for _, addr := range c.Search.Addresses {
		if err := validateHTTPURL(addr, "ELASTICSEARCH_URL"); err != nil {
			return err
		}
	}
	if c.Search.Index == "" {
		return fmt.Errorf("ELASTICSEARCH_INDEX is required when SEARCH_ENABLED=true")
	}
	if c.Search.PageSize < 1 || c.Search.PageSize > 10000 {
		return fmt.Errorf("SEARCH_PAGE_SIZE must be between 1 and 10000, got %d", c.Search.PageSize)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Backend != "memory" && c.Cache.Backend != "badger" {
		return fmt.Errorf("CACHE_BACKEND must be memory or badger, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive, got %v", c.Cache.CleanupInterval)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0,1], got %v", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %v", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateProviders() error {
	if c.Routing.Enabled && c.Routing.BaseURL != "" {
		if err := validateBaseURL(c.Routing.BaseURL, "ROUTING_BASE_URL"); err != nil {
			return err
		}
		if c.Routing.Timeout <= 0 {
			return fmt.Errorf("ROUTING_TIMEOUT must be positive")
		}
	}
	if c.Geocoding.Enabled && c.Geocoding.BaseURL != "" {
		if err := validateBaseURL(c.Geocoding.BaseURL, "GEOCODING_BASE_URL"); err != nil {
			return err
		}
		if c.Geocoding.Timeout <= 0 {
			return fmt.Errorf("GEOCODING_TIMEOUT must be positive")
		}
		if c.Geocoding.MaxResults < 1 {
			return fmt.Errorf("GEOCODING_MAX_RESULTS must be at least 1")
		}
	}
	if c.LLM.Enabled {
		if err := validateBaseURL(c.LLM.BaseURL, "LLM_BASE_URL"); err != nil {
			return err
		}
		if c.LLM.Model == "" {
			return fmt.Errorf("LLM_MODEL is required when LLM_ENABLED=true")
		}
		if c.LLM.Timeout <= 0 {
			return fmt.Errorf("LLM_TIMEOUT must be positive")
		}
		if c.LLM.RequestsPerSecond <= 0 || c.LLM.Burst < 1 {
			return fmt.Errorf("LLM rate limit must be positive")
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultMaxStops < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_MAX_STOPS must be at least 1, got %d", r.DefaultMaxStops)
	}
	if r.MaxStopsLimit < r.DefaultMaxStops {
		return fmt.Errorf("RECOMMEND_MAX_STOPS_LIMIT (%d) must be >= RECOMMEND_DEFAULT_MAX_STOPS (%d)", r.MaxStopsLimit, r.DefaultMaxStops)
	}
	if r.Concurrency < 1 {
		return fmt.Errorf("RECOMMEND_CONCURRENCY must be at least 1, got %d", r.Concurrency)
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be positive")
	}
	switch r.TransportMode {
	case "car", "bike", "foot", "motorcycle":
		return nil
	default:
		return fmt.Errorf("RECOMMEND_TRANSPORT_MODE must be car, bike, foot or motorcycle, got %q", r.TransportMode)
	}
}

func (c *Config) validateChat() error {
	if c.Chat.MaxStops < 1 {
		return fmt.Errorf("CHAT_MAX_STOPS must be at least 1, got %d", c.Chat.MaxStops)
	}
	replies := map[string]string{
		"apology":       c.Chat.Replies.Apology,
		"ask_start":     c.Chat.Replies.AskStart,
		"no_match":      c.Chat.Replies.NoMatch,
		"clarify_user":  c.Chat.Replies.ClarifyUser,
		"chat_fallback": c.Chat.Replies.ChatFallback,
	}
	for name, text := range replies {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("chat.replies.%s must not be empty", name)
		}
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validateHTTPURL checks for an http(s) URL with a host and no path or query.
func validateHTTPURL(rawURL, fieldName string) error {
	if err := validateBaseURL(rawURL, fieldName); err != nil {
		return err
	}
	parsed, _ := url.Parse(rawURL)
	if parsed.Path != "" && parsed.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsed.Path)
	}
	return nil
}

// validateBaseURL checks for an http(s) URL with a host and no query.
// A path prefix is allowed (https://maps.example/api).
func validateBaseURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsed.RawQuery)
	}
	return nil
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Configured reports whether the routing provider can be called.
func (r RoutingConfig) Configured() bool {
	return r.Enabled && r.BaseURL != "" && r.APIKey != ""
}

// Configured reports whether the geocoder can be called.
func (g GeocodingConfig) Configured() bool {
	return g.Enabled && g.BaseURL != "" && g.APIKey != ""
}

// Configured reports whether the language model can be called.
func (l LLMConfig) Configured() bool {
	return l.Enabled && l.BaseURL != "" && l.APIKey != ""
}
