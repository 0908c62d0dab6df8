// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package recommend

import (
	"math"

	"github.com/tomtom215/waypoint/internal/models"
)

// Scoring weights. They define reproducible ranking and are not tunable.
const (
	WeightDistance   = 0.35
	WeightRating     = 0.25
	WeightCategory   = 0.20
	WeightPopularity = 0.10
	WeightHistory    = 0.10
)

const (
	// distanceHorizonKm is where the distance score reaches zero.
	distanceHorizonKm = 10.0
	// popularitySaturation is the review count at which popularity saturates.
	popularitySaturation = 1000.0

	neutralCategoryScore = 0.5
	neutralHistoryScore  = 0.5
	likedHistoryScore    = 0.7
	likedRatingThreshold = 4
)

// Score computes the breakdown for one location. Missing rating and review
// count score as zero. A negative distance is treated as 0 km and a NaN or
// infinite distance scores 0.
func Score(loc *models.Location, distanceKm float64, prefs models.Preferences, history []models.UserHistoryEntry) models.ScoreBreakdown {
	s := models.ScoreBreakdown{
		Distance:   distanceScore(distanceKm),
		Rating:     ratingScore(loc.Rating),
		Category:   categoryScore(loc.Categories, prefs.PreferredCategoryIDs),
		Popularity: popularityScore(loc.ReviewCount),
		History:    historyScore(history),
	}
	s.Total = WeightDistance*s.Distance +
		WeightRating*s.Rating +
		WeightCategory*s.Category +
		WeightPopularity*s.Popularity +
		WeightHistory*s.History
	return s
}

func distanceScore(km float64) float64 {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return 0
	}
	if km < 0 {
		km = 0
	}
	return math.Max(0, 1-km/distanceHorizonKm)
}

func ratingScore(rating *float64) float64 {
	if rating == nil || math.IsNaN(*rating) {
		return 0
	}
	return clamp01(*rating / 5)
}

func popularityScore(reviewCount int) float64 {
	if reviewCount <= 0 {
		return 0
	}
	return math.Min(1, math.Log1p(float64(reviewCount))/math.Log(popularitySaturation))
}

// categoryScore is the fraction of distinct preferred ids present on the location.
func categoryScore(locationCategories, preferred []string) float64 {
	wanted := make(map[string]struct{}, len(preferred))
	for _, id := range preferred {
		if id != "" {
			wanted[id] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return neutralCategoryScore
	}

	matched := make(map[string]struct{}, len(wanted))
	for _, id := range locationCategories {
		if _, ok := wanted[id]; ok {
			matched[id] = struct{}{}
		}
	}
	return float64(len(matched)) / float64(len(wanted))
}

func historyScore(history []models.UserHistoryEntry) float64 {
	for i := range history {
		if history[i].Rating >= likedRatingThreshold {
			return likedHistoryScore
		}
	}
	return neutralHistoryScore
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
