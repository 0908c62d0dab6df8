// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import "strings"

// Category is a point-of-interest category (museum, cafe, park...).
type Category struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	NameVI string `json:"name_vi,omitempty" yaml:"name_vi"`
}

// Location is a candidate sightseeing stop. Locations are owned by the
// catalog store and treated as read-only by the ranking code.
type Location struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	NameVI      string     `json:"name_vi,omitempty" yaml:"name_vi"`
	Address     string     `json:"address,omitempty" yaml:"address"`
	District    string     `json:"district,omitempty" yaml:"district"`
	Coordinate  Coordinate `json:"coordinate" yaml:"-"`
	Rating      *float64   `json:"rating,omitempty" yaml:"rating"`
	ReviewCount int        `json:"review_count" yaml:"review_count"`
	Categories  []string   `json:"categories" yaml:"categories"`
	PriceLevel  int        `json:"price_level,omitempty" yaml:"price_level"`
	Active      bool       `json:"is_active" yaml:"-"`
}

// DisplayName prefers the localized name, falling back to the default name.
func (l *Location) DisplayName() string {
	if strings.TrimSpace(l.NameVI) != "" {
		return l.NameVI
	}
	return l.Name
}

// UserHistoryEntry is one past review written by the requesting traveller.
type UserHistoryEntry struct {
	LocationID string   `json:"location_id"`
	Rating     int      `json:"rating"`
	Categories []string `json:"categories,omitempty"`
	District   string   `json:"district,omitempty"`
	PriceLevel int      `json:"price_level,omitempty"`
}
