// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package chat

import (
	"fmt"
	"strings"

	"github.com/tomtom215/waypoint/internal/models"
)

// DerivePreferences builds ranking preferences from a parsed intent.
//
// Budget comes from the "budget" or "budget_level" preference and defaults to
// low when the intent label mentions a budget. Pace comes from "pace" or
// "travel_pace". The poi_type is mapped to a catalog category id by
// case-insensitive match on id, name or localized name, and used verbatim
// when nothing matches.
func DerivePreferences(intent models.Intent, catalog []models.Category) models.Preferences {
	var prefs models.Preferences

	if b := models.BudgetLevel(firstString(intent.Preferences, "budget", "budget_level")); b.Valid() {
		prefs.BudgetLevel = b
	}
	if prefs.BudgetLevel == "" && strings.Contains(strings.ToLower(intent.Intent), "budget") {
		prefs.BudgetLevel = models.BudgetLow
	}

	if p := models.TravelPace(firstString(intent.Preferences, "pace", "travel_pace")); p.Valid() {
		prefs.TravelPace = p
	}

	if poi := strings.TrimSpace(intent.POIType); poi != "" {
		prefs.PreferredCategoryIDs = []string{matchCategory(poi, catalog)}
	}
	return prefs
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		s := strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
		if s != "" {
			return s
		}
	}
	return ""
}

func matchCategory(poi string, catalog []models.Category) string {
	for _, c := range catalog {
		if strings.EqualFold(c.ID, poi) || strings.EqualFold(c.Name, poi) || (c.NameVI != "" && strings.EqualFold(c.NameVI, poi)) {
			return c.ID
		}
	}
	return poi
}
