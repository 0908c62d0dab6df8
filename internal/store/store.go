// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package store provides the read-only catalog the ranking code works from:
// active locations, categories, users and their review history.
//
// SQLStore serves everything from a relational database (SQLite, PostgreSQL
// or MySQL). ElasticLocations can replace the location source with an
// Elasticsearch index for deployments that keep the catalog in search.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/waypoint/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// LocationStore returns the complete set of active candidate locations.
// Implementations that page internally must assemble every page first.
type LocationStore interface {
	GetAll(ctx context.Context) ([]models.Location, error)
}

// UserStore answers whether a traveller exists.
type UserStore interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// HistoryStore returns a traveller's past reviews. Unknown users have an
// empty history, not an error.
type HistoryStore interface {
	GetHistory(ctx context.Context, userID string) ([]models.UserHistoryEntry, error)
}

// CategoryStore lists the category catalog.
type CategoryStore interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// RequireUser returns an error wrapping ErrNotFound when userID is unknown.
func RequireUser(ctx context.Context, users UserStore, userID string) error {
	ok, err := users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	return nil
}
