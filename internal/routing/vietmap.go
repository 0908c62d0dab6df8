// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package routing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/upstream"
)

// ProviderName labels VietMap routing in metrics and breaker names.
const ProviderName = "vietmap-route"

// DefaultTimeout bounds a single route request.
const DefaultTimeout = 10 * time.Second

// VietMapConfig configures the VietMap route client.
type VietMapConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// VietMapClient fetches road distances from the VietMap route API.
type VietMapClient struct {
	baseURL string
	apiKey  string
	client  *upstream.Client
	cache   cache.Cacher
}

// NewVietMapClient creates a route client. breaker and c may be nil.
func NewVietMapClient(cfg VietMapConfig, breaker *upstream.Breaker, c cache.Cacher) *VietMapClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &VietMapClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  upstream.NewClient(ProviderName, timeout, breaker),
		cache:   c,
	}
}

type distanceField struct {
	Distance *float64 `json:"distance"`
}

// routeResponse accepts the shapes VietMap has returned over time.
type routeResponse struct {
	Paths     []distanceField `json:"paths"`
	Routes    []distanceField `json:"routes"`
	DistanceM *float64        `json:"distance_m"`
}

// metres returns the first present distance in paths, routes, distance_m order.
func (r *routeResponse) metres() (float64, bool) {
	if len(r.Paths) > 0 && r.Paths[0].Distance != nil {
		return *r.Paths[0].Distance, true
	}
	if len(r.Routes) > 0 && r.Routes[0].Distance != nil {
		return *r.Routes[0].Distance, true
	}
	if r.DistanceM != nil {
		return *r.DistanceM, true
	}
	return 0, false
}

type routeKey struct {
	Origin      [2]float64 `json:"o"`
	Destination [2]float64 `json:"d"`
	Mode        string     `json:"m"`
}

// Route returns the road distance in kilometres.
func (c *VietMapClient) Route(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) (float64, error) {
	mode = mode.OrDefault()
	// The key and the request carry the same microdegree precision.
	origin, destination = roundCoordinate(origin), roundCoordinate(destination)
	key := cache.GenerateKey("route", routeKey{
		Origin:      [2]float64{origin.Latitude, origin.Longitude},
		Destination: [2]float64{destination.Latitude, destination.Longitude},
		Mode:        string(mode),
	})

	if c.cache != nil {
		var km float64
		hit := cache.GetJSON(c.cache, key, &km)
		metrics.RecordCacheLookup("route", hit)
		if hit {
			return km, nil
		}
	}

	var resp routeResponse
	if err := c.client.GetJSON(ctx, c.routeURL(origin, destination, mode), nil, &resp); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m, ok := resp.metres()
	if !ok || !usable(m) {
		return 0, ErrNoDistance
	}
	km := m / 1000.0

	if c.cache != nil {
		_ = cache.SetJSON(c.cache, key, km)
	}
	return km, nil
}

func (c *VietMapClient) routeURL(origin, destination models.Coordinate, mode models.TransportMode) string {
	q := url.Values{}
	q.Add("point", origin.String())
	q.Add("point", destination.String())
	q.Set("vehicle", string(mode))
	q.Set("points_encoded", "false")
	q.Set("apikey", c.apiKey)
	return c.baseURL + "/route?" + q.Encode()
}

func roundCoordinate(c models.Coordinate) models.Coordinate {
	return models.Coordinate{
		Latitude:  math.Round(c.Latitude*1e6) / 1e6,
		Longitude: math.Round(c.Longitude*1e6) / 1e6,
	}
}
