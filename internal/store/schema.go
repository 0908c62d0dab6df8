// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

/*
schema.go - Catalog Schema

Tables:
  - users: travellers that can request recommendations
  - categories: point-of-interest categories with localized names
  - locations: candidate stops with coordinates, rating and review count
  - location_categories: many-to-many link between locations and categories
  - reviews: per-user ratings, read back as recommendation history

The DDL sticks to types all three dialects accept (VARCHAR keys, DOUBLE
PRECISION, BOOLEAN, TIMESTAMP) so a single statement list serves SQLite,
PostgreSQL and MySQL.
*/

package store

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 60*time.Second)
}

// Migrate creates the catalog tables and indexes if they do not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	ctx, cancel := schemaContext(ctx)
	defer cancel()

	for _, query := range s.schemaQueries() {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func (s *SQLStore) schemaQueries() []string {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			full_name VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			name_vi VARCHAR(100) NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS locations (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			name_vi VARCHAR(255) NOT NULL DEFAULT '',
			address VARCHAR(512) NOT NULL DEFAULT '',
			district VARCHAR(100) NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			rating DOUBLE PRECISION,
			review_count INTEGER NOT NULL DEFAULT 0,
			price_level INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			CHECK (rating IS NULL OR (rating >= 0 AND rating <= 5))
		)`,

		`CREATE TABLE IF NOT EXISTS location_categories (
			location_id VARCHAR(64) NOT NULL,
			category_id VARCHAR(64) NOT NULL,
			PRIMARY KEY (location_id, category_id),
			FOREIGN KEY (location_id) REFERENCES locations(id) ON DELETE CASCADE,
			FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
		)`,

		`CREATE TABLE IF NOT EXISTS reviews (
			id VARCHAR(64) PRIMARY KEY,
			location_id VARCHAR(64) NOT NULL,
			user_id VARCHAR(64) NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			CHECK (rating >= 1 AND rating <= 5),
			FOREIGN KEY (location_id) REFERENCES locations(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	// MySQL has no CREATE INDEX IF NOT EXISTS; the primary and foreign keys
	// already index the lookup columns there.
	if s.dialect.driver != DriverMySQL {
		queries = append(queries,
			`CREATE INDEX IF NOT EXISTS idx_locations_active ON locations(is_active)`,
			`CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id)`,
		)
	}
	return queries
}
