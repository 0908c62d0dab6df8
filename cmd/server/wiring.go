// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/waypoint/internal/api"
	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/chat"
	"github.com/tomtom215/waypoint/internal/config"
	"github.com/tomtom215/waypoint/internal/geocode"
	"github.com/tomtom215/waypoint/internal/llm"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/recommend"
	"github.com/tomtom215/waypoint/internal/routing"
	"github.com/tomtom215/waypoint/internal/store"
	"github.com/tomtom215/waypoint/internal/upstream"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds every constructed component of the server.
type app struct {
	catalog *store.SQLStore
	cache   cache.Cacher
	handler http.Handler
}

// newApp builds the component graph from cfg. The caller owns Close.
//
//nolint:gocyclo // sequential construction with optional providers
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	catalog, err := openCatalog(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	responseCache, err := cache.New(cache.Config{
		Backend:         cfg.Cache.Backend,
		TTL:             cfg.Cache.TTL,
		Path:            cfg.Cache.Path,
		CleanupInterval: cfg.Cache.CleanupInterval,
	})
	if err != nil {
		_ = catalog.Close()
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	logging.Info().Str("backend", cfg.Cache.Backend).Dur("ttl", cfg.Cache.TTL).Msg("Upstream response cache ready")

	a := &app{catalog: catalog, cache: responseCache}

	var locations store.LocationStore = catalog
	readiness := map[string]api.Pinger{"database": catalog}
	if cfg.Search.Enabled {
		elastic, err := store.NewElasticLocations(store.ElasticConfig{
			Addresses: cfg.Search.Addresses,
			Username:  cfg.Search.Username,
			Password:  cfg.Search.Password,
			Index:     cfg.Search.Index,
			PageSize:  cfg.Search.PageSize,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		locations = elastic
		readiness["search"] = elastic
		logging.Info().Strs("addresses", cfg.Search.Addresses).Str("index", cfg.Search.Index).Msg("Serving locations from Elasticsearch")
	}

	breakers := breakerSettings(cfg.Breaker)

	var provider routing.RouteProvider
	if cfg.Routing.Enabled && cfg.Routing.APIKey != "" {
		provider = routing.NewVietMapClient(routing.VietMapConfig{
			BaseURL: cfg.Routing.BaseURL,
			APIKey:  cfg.Routing.APIKey,
			Timeout: cfg.Routing.Timeout,
		}, upstream.NewBreaker(routing.ProviderName, breakers), responseCache)
		logging.Info().Str("base_url", logging.RedactURL(cfg.Routing.BaseURL)).Msg("Routed distances enabled")
	} else {
		logging.Info().Msg("Routing provider not configured, distances are geodesic")
	}

	var geocoder geocode.Geocoder
	if cfg.Geocoding.Enabled && cfg.Geocoding.APIKey != "" {
		geocoder = geocode.NewVietMapClient(geocode.VietMapConfig{
			BaseURL:    cfg.Geocoding.BaseURL,
			APIKey:     cfg.Geocoding.APIKey,
			Timeout:    cfg.Geocoding.Timeout,
			MaxResults: cfg.Geocoding.MaxResults,
		}, upstream.NewBreaker(geocode.ProviderName, breakers), responseCache)
	} else {
		logging.Info().Msg("Geocoding not configured, start names cannot be resolved")
	}

	// A disabled model still gets a client: it reports ErrNotConfigured and
	// every conversational path takes its fallback.
	llmCfg := llm.Config{}
	if cfg.LLM.Enabled {
		llmCfg = llm.Config{
			BaseURL:           cfg.LLM.BaseURL,
			APIKey:            cfg.LLM.APIKey,
			Model:             cfg.LLM.Model,
			Temperature:       cfg.LLM.Temperature,
			Timeout:           cfg.LLM.Timeout,
			RequestsPerSecond: cfg.LLM.RequestsPerSecond,
			Burst:             cfg.LLM.Burst,
		}
	}
	assistant := llm.NewAssistant(llm.NewClient(llmCfg, upstream.NewBreaker(llm.ProviderName, breakers)))
	if !cfg.LLM.Enabled || cfg.LLM.APIKey == "" {
		logging.Warn().Msg("Language model not configured, chat endpoints answer with fallbacks")
	}

	recCfg := recommend.Config{
		DefaultMaxStops: cfg.Recommend.DefaultMaxStops,
		MaxStopsLimit:   cfg.Recommend.MaxStopsLimit,
		Concurrency:     cfg.Recommend.Concurrency,
		RequestTimeout:  cfg.Recommend.RequestTimeout,
		TransportMode:   models.TransportMode(cfg.Recommend.TransportMode),
	}
	if err := recCfg.Validate(); err != nil {
		a.Close()
		return nil, fmt.Errorf("invalid recommendation settings: %w", err)
	}

	pipeline := recommend.NewPipeline(routing.NewResolver(provider), recCfg)
	recommender := recommend.NewService(recCfg, pipeline, geocoder, recommend.Stores{
		Locations: locations,
		Users:     catalog,
		History:   catalog,
	})

	chatCfg := chat.Config{
		MaxStops:      cfg.Chat.MaxStops,
		TransportMode: recCfg.TransportMode,
		Replies: chat.Replies{
			Apology:      cfg.Chat.Replies.Apology,
			AskStart:     cfg.Chat.Replies.AskStart,
			NoMatch:      cfg.Chat.Replies.NoMatch,
			ClarifyUser:  cfg.Chat.Replies.ClarifyUser,
			ChatFallback: cfg.Chat.Replies.ChatFallback,
		},
	}
	orchestrator := chat.NewOrchestrator(chatCfg, assistant, geocoder, chat.Stores{
		Locations:  locations,
		History:    catalog,
		Categories: catalog,
	}, pipeline, assistant)
	conversation := chat.NewRouter(chatCfg, assistant, assistant, assistant, orchestrator)

	handler := api.NewHandler(api.HandlerDeps{
		Recommender:  recommender,
		Orchestrator: orchestrator,
		Conversation: conversation,
		Readiness:    readiness,
		Version:      version,
	})

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled

	a.handler = api.NewRouter(handler, api.NewChiMiddleware(mwCfg)).SetupChi()
	return a, nil
}

// openCatalog connects, migrates and seeds the relational catalog.
func openCatalog(ctx context.Context, cfg config.DatabaseConfig) (*store.SQLStore, error) {
	catalog, err := store.Open(ctx, store.Config{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Migrate {
		if err := catalog.Migrate(ctx); err != nil {
			_ = catalog.Close()
			return nil, fmt.Errorf("failed to migrate catalog: %w", err)
		}
	}

	if cfg.SeedPath != "" {
		seed, err := store.LoadSeed(cfg.SeedPath)
		if err != nil {
			_ = catalog.Close()
			return nil, err
		}
		if err := catalog.Seed(ctx, seed); err != nil {
			_ = catalog.Close()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		logging.Info().
			Str("path", cfg.SeedPath).
			Int("locations", len(seed.Locations)).
			Int("users", len(seed.Users)).
			Msg("Catalog seeded")
	}
	return catalog, nil
}

func breakerSettings(cfg config.BreakerConfig) upstream.BreakerSettings {
	return upstream.BreakerSettings{
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		MinRequests:  cfg.MinRequests,
		FailureRatio: cfg.FailureRatio,
	}
}

// Close releases the cache and the catalog connection.
func (a *app) Close() {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	if a.catalog != nil {
		errs = append(errs, a.catalog.Close())
	}
	if err := errors.Join(errs...); err != nil {
		logging.Error().Err(err).Msg("Error releasing resources")
	}
}
