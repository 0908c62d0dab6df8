// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package chat

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/tomtom215/waypoint/internal/geocode"
	"github.com/tomtom215/waypoint/internal/models"
	"github.com/tomtom215/waypoint/internal/recommend"
)

var errUpstream = errors.New("upstream down")

type fakeParser struct {
	intent models.Intent
	err    error
	calls  atomic.Int32
}

func (f *fakeParser) ParseIntent(context.Context, string) (models.Intent, error) {
	f.calls.Add(1)
	return f.intent, f.err
}

type fakeGeocoder map[string]models.Coordinate

func (g fakeGeocoder) Geocode(_ context.Context, name string) (models.Coordinate, error) {
	if c, ok := g[name]; ok {
		return c, nil
	}
	return models.Coordinate{}, geocode.ErrNotFound
}

type fakeStores struct {
	locations  []models.Location
	history    []models.UserHistoryEntry
	categories []models.Category
	locErr     error
	histErr    error
}

func (f *fakeStores) GetAll(context.Context) ([]models.Location, error) {
	return f.locations, f.locErr
}

func (f *fakeStores) GetHistory(context.Context, string) ([]models.UserHistoryEntry, error) {
	return f.history, f.histErr
}

func (f *fakeStores) Categories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}

// spyRanker records the last request and delegates to a real pipeline.
type spyRanker struct {
	calls atomic.Int32
	last  recommend.RankRequest
	inner *recommend.Pipeline
}

func (s *spyRanker) Rank(ctx context.Context, req recommend.RankRequest) ([]models.RankedRecommendation, error) {
	s.calls.Add(1)
	s.last = req
	return s.inner.Rank(ctx, req)
}

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateReply(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type fakeClassifier struct {
	decision models.ModeDecision
	err      error
}

func (f fakeClassifier) ClassifyMode(context.Context, string) (models.ModeDecision, error) {
	return f.decision, f.err
}
