// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

// BudgetLevel is the traveller's spending preference.
type BudgetLevel string

const (
	BudgetLow    BudgetLevel = "low"
	BudgetMedium BudgetLevel = "medium"
	BudgetHigh   BudgetLevel = "high"
)

// Valid reports whether b is a known budget level.
func (b BudgetLevel) Valid() bool {
	return b == BudgetLow || b == BudgetMedium || b == BudgetHigh
}

// TravelPace is carried through to replies but is not weighted in scoring.
type TravelPace string

const (
	PaceSlow     TravelPace = "slow"
	PaceModerate TravelPace = "moderate"
	PaceFast     TravelPace = "fast"
)

// Valid reports whether p is a known pace.
func (p TravelPace) Valid() bool {
	return p == PaceSlow || p == PaceModerate || p == PaceFast
}

// Preferences are the traveller's stated preferences for one request.
type Preferences struct {
	BudgetLevel          BudgetLevel `json:"budget_level,omitempty" validate:"omitempty,budget_level"`
	PreferredCategoryIDs []string    `json:"preferred_category_ids,omitempty" validate:"omitempty,dive,required"`
	TravelPace           TravelPace  `json:"travel_pace,omitempty" validate:"omitempty,travel_pace"`
}

// ScoreBreakdown holds the five normalized scoring components and their weighted total.
type ScoreBreakdown struct {
	Distance   float64 `json:"distance"`
	Rating     float64 `json:"rating"`
	Category   float64 `json:"category"`
	Popularity float64 `json:"popularity"`
	History    float64 `json:"history"`
	Total      float64 `json:"total"`
}

// RankedRecommendation is one scored stop. DistanceKm is nil when no
// distance could be resolved.
type RankedRecommendation struct {
	LocationID     string         `json:"location_id"`
	Name           string         `json:"name"`
	District       string         `json:"district,omitempty"`
	Coordinate     Coordinate     `json:"coordinate"`
	DistanceKm     *float64       `json:"distance_km"`
	DistanceSource DistanceSource `json:"distance_source,omitempty"`
	Categories     []string       `json:"categories"`
	Score          ScoreBreakdown `json:"score"`
}

// Selected projects a recommendation onto the compact chat shape.
func (r *RankedRecommendation) Selected() SelectedLocation {
	return SelectedLocation{
		ID:       r.LocationID,
		Name:     r.Name,
		District: r.District,
		Score:    r.Score.Total,
	}
}
