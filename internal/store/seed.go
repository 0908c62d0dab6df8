// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/models"
)

// Catalog is the YAML seed file layout.
//
//	categories:
//	  - {id: museum, name: Museum, name_vi: Bảo tàng}
//	locations:
//	  - id: war-remnants
//	    name: War Remnants Museum
//	    lat: 10.7795
//	    lng: 106.6921
//	    categories: [museum]
//	users:
//	  - {id: u1, email: an@example.com, full_name: Nguyen An}
//	reviews:
//	  - {id: r1, user_id: u1, location_id: war-remnants, rating: 5}
type Catalog struct {
	Categories []models.Category `yaml:"categories"`
	Locations  []SeedLocation    `yaml:"locations"`
	Users      []SeedUser        `yaml:"users"`
	Reviews    []SeedReview      `yaml:"reviews"`
}

// SeedLocation is a location as written in the seed file.
type SeedLocation struct {
	models.Location `yaml:",inline"`
	Latitude        float64 `yaml:"lat"`
	Longitude       float64 `yaml:"lng"`
	// Active defaults to true when omitted.
	Active *bool `yaml:"is_active"`
}

// ToLocation converts the seed entry to a catalog location.
func (l SeedLocation) ToLocation() models.Location {
	loc := l.Location
	loc.Coordinate = models.Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
	loc.Active = l.Active == nil || *l.Active
	if loc.Categories == nil {
		loc.Categories = []string{}
	}
	return loc
}

// SeedUser is a traveller in the seed file.
type SeedUser struct {
	ID       string `yaml:"id"`
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
}

// SeedReview is a past review in the seed file.
type SeedReview struct {
	ID         string `yaml:"id"`
	UserID     string `yaml:"user_id"`
	LocationID string `yaml:"location_id"`
	Rating     int    `yaml:"rating"`
	Comment    string `yaml:"comment"`
}

// LoadSeed reads and validates a YAML catalog.
func LoadSeed(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return &c, nil
}

// Validate checks ids, coordinates, ratings and references.
func (c *Catalog) Validate() error {
	categories := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.ID == "" || cat.Name == "" {
			return fmt.Errorf("category %q: id and name are required", cat.ID)
		}
		categories[cat.ID] = true
	}

	locations := make(map[string]bool, len(c.Locations))
	for _, l := range c.Locations {
		loc := l.ToLocation()
		if loc.ID == "" || loc.Name == "" {
			return fmt.Errorf("location %q: id and name are required", loc.ID)
		}
		if err := loc.Coordinate.Validate(); err != nil {
			return fmt.Errorf("location %q: %w", loc.ID, err)
		}
		if loc.Rating != nil && (*loc.Rating < 0 || *loc.Rating > 5) {
			return fmt.Errorf("location %q: rating %v outside 0-5", loc.ID, *loc.Rating)
		}
		if loc.ReviewCount < 0 {
			return fmt.Errorf("location %q: negative review_count", loc.ID)
		}
		for _, catID := range loc.Categories {
			if !categories[catID] {
				return fmt.Errorf("location %q: unknown category %q", loc.ID, catID)
			}
		}
		locations[loc.ID] = true
	}

	users := make(map[string]bool, len(c.Users))
	for _, u := range c.Users {
		if u.ID == "" {
			return fmt.Errorf("user: id is required")
		}
		users[u.ID] = true
	}

	for _, r := range c.Reviews {
		if r.ID == "" {
			return fmt.Errorf("review: id is required")
		}
		if !users[r.UserID] {
			return fmt.Errorf("review %q: unknown user %q", r.ID, r.UserID)
		}
		if !locations[r.LocationID] {
			return fmt.Errorf("review %q: unknown location %q", r.ID, r.LocationID)
		}
		if r.Rating < 1 || r.Rating > 5 {
			return fmt.Errorf("review %q: rating %d outside 1-5", r.ID, r.Rating)
		}
	}
	return nil
}

// Seed inserts the catalog in one transaction. Rows whose id already exists
// are left untouched, so seeding twice is harmless.
func (s *SQLStore) Seed(ctx context.Context, c *Catalog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := s.seedRows(ctx, tx, c); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	logging.Info().
		Int("categories", len(c.Categories)).
		Int("locations", len(c.Locations)).
		Int("users", len(c.Users)).
		Int("reviews", len(c.Reviews)).
		Msg("Catalog seeded")
	return nil
}

func (s *SQLStore) seedRows(ctx context.Context, tx *sql.Tx, c *Catalog) error {
	insertCategory := s.dialect.insertIgnore("categories", "id", "name", "name_vi")
	for _, cat := range c.Categories {
		if _, err := tx.ExecContext(ctx, insertCategory, cat.ID, cat.Name, cat.NameVI); err != nil {
			return fmt.Errorf("insert category %q: %w", cat.ID, err)
		}
	}

	insertUser := s.dialect.insertIgnore("users", "id", "email", "full_name")
	for _, u := range c.Users {
		if _, err := tx.ExecContext(ctx, insertUser, u.ID, u.Email, u.FullName); err != nil {
			return fmt.Errorf("insert user %q: %w", u.ID, err)
		}
	}

	insertLocation := s.dialect.insertIgnore("locations",
		"id", "name", "name_vi", "address", "district", "latitude", "longitude",
		"rating", "review_count", "price_level", "is_active")
	insertLink := s.dialect.insertIgnore("location_categories", "location_id", "category_id")
	for _, l := range c.Locations {
		loc := l.ToLocation()
		var rating sql.NullFloat64
		if loc.Rating != nil {
			rating = sql.NullFloat64{Float64: *loc.Rating, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertLocation,
			loc.ID, loc.Name, loc.NameVI, loc.Address, loc.District,
			loc.Coordinate.Latitude, loc.Coordinate.Longitude,
			rating, loc.ReviewCount, loc.PriceLevel, loc.Active,
		); err != nil {
			return fmt.Errorf("insert location %q: %w", loc.ID, err)
		}
		for _, catID := range loc.Categories {
			if _, err := tx.ExecContext(ctx, insertLink, loc.ID, catID); err != nil {
				return fmt.Errorf("link location %q to category %q: %w", loc.ID, catID, err)
			}
		}
	}

	insertReview := s.dialect.insertIgnore("reviews", "id", "location_id", "user_id", "rating", "comment")
	for _, r := range c.Reviews {
		if _, err := tx.ExecContext(ctx, insertReview, r.ID, r.LocationID, r.UserID, r.Rating, r.Comment); err != nil {
			return fmt.Errorf("insert review %q: %w", r.ID, err)
		}
	}
	return nil
}
