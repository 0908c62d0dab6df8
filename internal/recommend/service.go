// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/waypoint/internal/geocode"
	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/store"
)

var (
	// ErrStartNotFound means the start point could not be determined.
	ErrStartNotFound = errors.New("start point not found")

	// ErrUserNotFound means the requesting user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Request is a direct recommendation request. Exactly one of StartPoint or
// StartName is needed; StartPoint wins when both are set.
type Request struct {
	UserID        string               `json:"user_id" validate:"required,max=128"`
	StartPoint    *models.Coordinate   `json:"start_point,omitempty" validate:"required_without=StartName,omitempty"`
	StartName     string               `json:"start_name,omitempty" validate:"required_without=StartPoint,max=200"`
	Preferences   models.Preferences   `json:"preferences"`
	MaxStops      int                  `json:"max_stops,omitempty" validate:"gte=0"`
	TransportMode models.TransportMode `json:"transport_mode,omitempty" validate:"omitempty,transport_mode"`
}

// Response is the result of a direct recommendation.
type Response struct {
	Recommendations           []models.RankedRecommendation `json:"recommendations"`
	TotalCandidatesConsidered int                           `json:"total_candidates_considered"`
	Start                     models.Coordinate             `json:"start"`
	TransportMode             models.TransportMode          `json:"transport_mode"`
}

// Stores groups the catalog reads the service performs.
type Stores struct {
	Locations store.LocationStore
	Users     store.UserStore
	History   store.HistoryStore
}

// Service implements the direct recommendation flow.
type Service struct {
	cfg      Config
	pipeline *Pipeline
	geocoder geocode.Geocoder
	stores   Stores
}

// NewService creates a Service. geocoder may be nil, in which case requests
// must carry a start_point.
func NewService(cfg Config, pipeline *Pipeline, geocoder geocode.Geocoder, stores Stores) *Service {
	return &Service{cfg: cfg, pipeline: pipeline, geocoder: geocoder, stores: stores}
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Recommend resolves the start point, checks the user, loads history and
// candidates and ranks them. The whole call runs under Config.RequestTimeout.
func (s *Service) Recommend(ctx context.Context, req Request) (*Response, error) {
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	start, err := s.resolveStart(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := store.RequireUser(ctx, s.stores.Users, req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, req.UserID)
		}
		return nil, fmt.Errorf("check user: %w", err)
	}

	history, err := s.stores.History.GetHistory(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	candidates, err := s.stores.Locations.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}

	mode := req.TransportMode
	if mode == "" {
		mode = s.cfg.TransportMode
	}
	mode = mode.OrDefault()

	ranked, err := s.pipeline.Rank(ctx, RankRequest{
		Candidates:  candidates,
		Origin:      start,
		Preferences: req.Preferences,
		History:     history,
		MaxStops:    s.cfg.effectiveMaxStops(req.MaxStops),
		Mode:        mode,
	})
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("user_id", req.UserID).
		Int("candidates", len(candidates)).
		Int("returned", len(ranked)).
		Msg("Recommendation complete")

	return &Response{
		Recommendations:           ranked,
		TotalCandidatesConsidered: len(candidates),
		Start:                     start,
		TransportMode:             mode,
	}, nil
}

func (s *Service) resolveStart(ctx context.Context, req Request) (models.Coordinate, error) {
	if req.StartPoint != nil {
		if err := req.StartPoint.Validate(); err != nil {
			return models.Coordinate{}, fmt.Errorf("%w: %w", ErrStartNotFound, err)
		}
		return *req.StartPoint, nil
	}

	name := strings.TrimSpace(req.StartName)
	if name == "" {
		return models.Coordinate{}, fmt.Errorf("%w: no start_point or start_name given", ErrStartNotFound)
	}
	if s.geocoder == nil {
		return models.Coordinate{}, fmt.Errorf("%w: geocoding is not configured", ErrStartNotFound)
	}

	coord, err := s.geocoder.Geocode(ctx, name)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %q: %w", ErrStartNotFound, name, err)
	}
	return coord, nil
}
