// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package geocode resolves free-text place names to coordinates.
package geocode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/upstream"
)

var (
	// ErrNotFound means the provider returned no usable candidate.
	ErrNotFound = errors.New("place not found")

	// ErrUnavailable means the provider could not be reached or refused the call.
	ErrUnavailable = errors.New("geocoding provider unavailable")
)

// Geocoder resolves a place name to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, name string) (models.Coordinate, error)
}

// ProviderName labels VietMap geocoding in metrics and breaker names.
const ProviderName = "vietmap-geocode"

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxResults = 3
)

// VietMapConfig configures the VietMap search client.
type VietMapConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxResults int
}

// VietMapClient geocodes through the VietMap search API.
type VietMapClient struct {
	baseURL    string
	apiKey     string
	maxResults int
	client     *upstream.Client
	cache      cache.Cacher
}

// NewVietMapClient creates a geocoder. breaker and c may be nil.
func NewVietMapClient(cfg VietMapConfig, breaker *upstream.Breaker, c cache.Cacher) *VietMapClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	return &VietMapClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		client:     upstream.NewClient(ProviderName, cfg.Timeout, breaker),
		cache:      c,
	}
}

// featureCollection is the {"code":"OK","data":{"features":[...]}} shape.
type featureCollection struct {
	Code string `json:"code"`
	Data struct {
		Features []struct {
			Geometry struct {
				// GeoJSON order: [lng, lat]
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	} `json:"data"`
}

// place is an element of the plain list shape.
type place struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Geocode returns the coordinate of the first candidate for name.
func (c *VietMapClient) Geocode(ctx context.Context, name string) (models.Coordinate, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return models.Coordinate{}, ErrNotFound
	}
	key := cache.GenerateKey("geocode", normalized)

	if c.cache != nil {
		var coord models.Coordinate
		hit := cache.GetJSON(c.cache, key, &coord)
		metrics.RecordCacheLookup("geocode", hit)
		if hit {
			return coord, nil
		}
	}

	var raw json.RawMessage
	if err := c.client.GetJSON(ctx, c.searchURL(strings.TrimSpace(name)), nil, &raw); err != nil {
		if errors.Is(err, context.Canceled) {
			return models.Coordinate{}, err
		}
		return models.Coordinate{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	coord, err := firstCandidate(raw)
	if err != nil {
		return models.Coordinate{}, err
	}

	if c.cache != nil {
		_ = cache.SetJSON(c.cache, key, coord)
	}
	return coord, nil
}

func (c *VietMapClient) searchURL(text string) string {
	q := url.Values{}
	q.Set("text", text)
	q.Set("size", strconv.Itoa(c.maxResults))
	q.Set("display_type", "1")
	q.Set("apikey", c.apiKey)
	return c.baseURL + "/search?" + q.Encode()
}

// firstCandidate extracts a coordinate from either response shape.
func firstCandidate(raw json.RawMessage) (models.Coordinate, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return models.Coordinate{}, ErrNotFound
	}

	var coord models.Coordinate
	switch trimmed[0] {
	case '{':
		var fc featureCollection
		if err := json.Unmarshal(trimmed, &fc); err != nil {
			return models.Coordinate{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		if fc.Code != "OK" || len(fc.Data.Features) == 0 {
			return models.Coordinate{}, ErrNotFound
		}
		pos := fc.Data.Features[0].Geometry.Coordinates
		if len(pos) < 2 {
			return models.Coordinate{}, ErrNotFound
		}
		coord = models.Coordinate{Latitude: pos[1], Longitude: pos[0]}
	case '[':
		var places []place
		if err := json.Unmarshal(trimmed, &places); err != nil {
			return models.Coordinate{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		if len(places) == 0 || places[0].Lat == nil || places[0].Lng == nil {
			return models.Coordinate{}, ErrNotFound
		}
		coord = models.Coordinate{Latitude: *places[0].Lat, Longitude: *places[0].Lng}
	default:
		return models.Coordinate{}, ErrNotFound
	}

	if err := coord.Validate(); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return coord, nil
}
