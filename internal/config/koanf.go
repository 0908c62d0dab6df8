// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/waypoint/config.yaml",
	"/etc/waypoint/config.yml",
}

const (
	// ConfigPathEnvVar overrides the config file path.
	ConfigPathEnvVar = "CONFIG_PATH"

	// DotEnvPathEnvVar overrides the .env file path.
	DotEnvPathEnvVar = "DOTENV_PATH"
)

// Default reply texts for the conversational degraded paths.
const (
	DefaultApologyReply      = "Sorry, I could not understand that request."
	DefaultAskStartReply     = "I need to know your starting location to suggest places (for example: 'I'm at Ben Thanh Market')."
	DefaultNoMatchReply      = "I couldn't find suitable places yet. Could you describe what you are looking for more clearly?"
	DefaultClarifyUserReply  = "I can plan stops for you once you sign in, so I can take your past visits into account."
	DefaultChatFallbackReply = "Sorry, I can't answer right now. Please try again in a moment."
)

// defaultConfig returns a Config with all defaults applied.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    90 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "file:waypoint.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			Migrate:         true,
			SeedPath:        "",
		},
		Search: SearchConfig{
			Enabled:   false,
			Addresses: []string{"http://localhost:9200"},
			Index:     "locations",
			PageSize:  500,
		},
		Cache: CacheConfig{
			Backend:         "memory",
			TTL:             time.Hour,
			Path:            "",
			CleanupInterval: 5 * time.Minute,
		},
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      2 * time.Minute,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Routing: RoutingConfig{
			Enabled: true,
			BaseURL: "https://maps.vietmap.vn/api",
			Timeout: 10 * time.Second,
		},
		Geocoding: GeocodingConfig{
			Enabled:    true,
			BaseURL:    "https://maps.vietmap.vn/api",
			Timeout:    10 * time.Second,
			MaxResults: 3,
		},
		LLM: LLMConfig{
			Enabled:           true,
			BaseURL:           "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:             "gemini-2.5-flash",
			Temperature:       0.2,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Recommend: RecommendConfig{
			DefaultMaxStops: 3,
			MaxStopsLimit:   50,
			Concurrency:     8,
			RequestTimeout:  30 * time.Second,
			TransportMode:   "car",
		},
		Chat: ChatConfig{
			MaxStops: 3,
			Replies: RepliesConfig{
				Apology:      DefaultApologyReply,
				AskStart:     DefaultAskStartReply,
				NoMatch:      DefaultNoMatchReply,
				ClarifyUser:  DefaultClarifyUserReply,
				ChatFallback: DefaultChatFallbackReply,
			},
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// Load loads configuration from defaults, .env, the config file and the environment.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return LoadWithKoanf()
}

// LoadWithKoanf loads configuration without touching .env files.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := applySharedProviderEnv(k); err != nil {
		return nil, fmt.Errorf("failed to apply provider settings: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports variables from a .env file. Variables already present
// in the environment win. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"search.addresses",
}

// processSliceFields converts comma-separated env values into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// sharedProviderEnv maps one environment variable onto several config paths.
// A path is only filled when it is still empty after the file and env layers.
var sharedProviderEnv = map[string][]string{
	"VIETMAP_API_KEY":  {"routing.api_key", "geocoding.api_key"},
	"VIETMAP_BASE_URL": {"routing.base_url", "geocoding.base_url"},
}

func applySharedProviderEnv(k *koanf.Koanf) error {
	for envName, paths := range sharedProviderEnv {
		val := os.Getenv(envName)
		if val == "" {
			continue
		}
		for _, path := range paths {
			current := k.String(path)
			if current != "" && !isDefault(path, current) {
				continue
			}
			if err := k.Set(path, val); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// isDefault reports whether value is the built-in default for path.
func isDefault(path, value string) bool {
	defaults := koanf.New(".")
	if err := defaults.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return false
	}
	return defaults.String(path) == value
}

// envMappings maps lower-cased environment variable names to config paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Database
	"db_driver":            "database.driver",
	"database_url":         "database.dsn",
	"db_dsn":               "database.dsn",
	"db_max_open_conns":    "database.max_open_conns",
	"db_max_idle_conns":    "database.max_idle_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",
	"db_migrate":           "database.migrate",
	"db_seed_path":         "database.seed_path",

	// Search
	"search_enabled":         "search.enabled",
	"elasticsearch_url":      "search.addresses",
	"elasticsearch_index":    "search.index",
	"elasticsearch_username": "search.username",
	"elasticsearch_password": "search.password",
	"search_page_size":       "search.page_size",

	// Cache
	"cache_backend":          "cache.backend",
	"cache_ttl":              "cache.ttl",
	"cache_path":             "cache.path",
	"cache_cleanup_interval": "cache.cleanup_interval",

	// Circuit breakers
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	// Routing
	"routing_enabled":  "routing.enabled",
	"routing_base_url": "routing.base_url",
	"routing_api_key":  "routing.api_key",
	"routing_timeout":  "routing.timeout",

	// Geocoding
	"geocoding_enabled":     "geocoding.enabled",
	"geocoding_base_url":    "geocoding.base_url",
	"geocoding_api_key":     "geocoding.api_key",
	"geocoding_timeout":     "geocoding.timeout",
	"geocoding_max_results": "geocoding.max_results",

	// Language model
	"llm_enabled":             "llm.enabled",
	"llm_base_url":            "llm.base_url",
	"llm_api_key":             "llm.api_key",
	"gemini_api_key":          "llm.api_key",
	"llm_model":               "llm.model",
	"llm_temperature":         "llm.temperature",
	"llm_timeout":             "llm.timeout",
	"llm_requests_per_second": "llm.requests_per_second",
	"llm_burst":               "llm.burst",

	// Recommendation
	"recommend_default_max_stops": "recommend.default_max_stops",
	"recommend_max_stops_limit":   "recommend.max_stops_limit",
	"recommend_concurrency":       "recommend.concurrency",
	"recommend_request_timeout":   "recommend.request_timeout",
	"recommend_transport_mode":    "recommend.transport_mode",

	// Chat
	"chat_max_stops": "chat.max_stops",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" so they are skipped.
//
//	HTTP_PORT       -> server.port
//	DATABASE_URL    -> database.dsn
//	GEMINI_API_KEY  -> llm.api_key
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
