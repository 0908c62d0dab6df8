// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
	"github.com/tomtom215/waypoint/internal/models"
)

// Config configures the relational catalog.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SQLStore implements every catalog interface over database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

var (
	_ LocationStore = (*SQLStore)(nil)
	_ UserStore     = (*SQLStore)(nil)
	_ HistoryStore  = (*SQLStore)(nil)
	_ CategoryStore = (*SQLStore)(nil)
)

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*SQLStore, error) {
	d, err := newDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	logging.Info().Str("driver", cfg.Driver).Msg("Catalog database connected")
	return &SQLStore{db: db, dialect: d}, nil
}

// Driver returns the configured driver name.
func (s *SQLStore) Driver() string {
	return s.dialect.driver
}

// Ping verifies the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) record(op string, start time.Time, err error) {
	metrics.RecordStoreQuery(s.dialect.driver, op, time.Since(start), err)
}

// GetAll returns every active location with its category ids, ordered by id.
func (s *SQLStore) GetAll(ctx context.Context) (locations []models.Location, err error) {
	start := time.Now()
	defer func() { s.record("get_all_locations", start, err) }()

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(`
		SELECT id, name, name_vi, address, district, latitude, longitude,
		       rating, review_count, price_level, is_active
		FROM locations
		WHERE is_active = ?
		ORDER BY id`), true)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	locations = make([]models.Location, 0)
	for rows.Next() {
		var (
			loc    models.Location
			rating sql.NullFloat64
		)
		if err := rows.Scan(
			&loc.ID, &loc.Name, &loc.NameVI, &loc.Address, &loc.District,
			&loc.Coordinate.Latitude, &loc.Coordinate.Longitude,
			&rating, &loc.ReviewCount, &loc.PriceLevel, &loc.Active,
		); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		if rating.Valid {
			r := rating.Float64
			loc.Rating = &r
		}
		loc.Categories = []string{}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}

	links, err := s.categoryLinks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range locations {
		if ids, ok := links[locations[i].ID]; ok {
			locations[i].Categories = ids
		}
	}
	return locations, nil
}

// categoryLinks maps location id to its category ids.
func (s *SQLStore) categoryLinks(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT location_id, category_id
		FROM location_categories
		ORDER BY location_id, category_id`)
	if err != nil {
		return nil, fmt.Errorf("query location categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	links := make(map[string][]string)
	for rows.Next() {
		var locationID, categoryID string
		if err := rows.Scan(&locationID, &categoryID); err != nil {
			return nil, fmt.Errorf("scan location category: %w", err)
		}
		links[locationID] = append(links[locationID], categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate location categories: %w", err)
	}
	return links, nil
}

// Exists reports whether the user is known.
func (s *SQLStore) Exists(ctx context.Context, userID string) (ok bool, err error) {
	start := time.Now()
	defer func() { s.record("user_exists", start, err) }()

	var one int
	err = s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT 1 FROM users WHERE id = ?`), userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user: %w", err)
	}
	return true, nil
}

// GetHistory returns the user's reviews, oldest first, joined with the
// reviewed location's district, price level and categories.
func (s *SQLStore) GetHistory(ctx context.Context, userID string) (history []models.UserHistoryEntry, err error) {
	start := time.Now()
	defer func() { s.record("get_history", start, err) }()

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(`
		SELECT r.location_id, r.rating, l.district, l.price_level
		FROM reviews r
		JOIN locations l ON l.id = r.location_id
		WHERE r.user_id = ?
		ORDER BY r.created_at, r.id`), userID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	history = make([]models.UserHistoryEntry, 0)
	for rows.Next() {
		var h models.UserHistoryEntry
		if err := rows.Scan(&h.LocationID, &h.Rating, &h.District, &h.PriceLevel); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	if len(history) == 0 {
		return history, nil
	}

	links, err := s.categoryLinks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range history {
		history[i].Categories = links[history[i].LocationID]
	}
	return history, nil
}

// Categories lists every category ordered by id.
func (s *SQLStore) Categories(ctx context.Context) (categories []models.Category, err error) {
	start := time.Now()
	defer func() { s.record("list_categories", start, err) }()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, name_vi FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories = make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.NameVI); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}
