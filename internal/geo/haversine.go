// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package geo provides great-circle geometry on the WGS84 sphere.
package geo

import (
	"github.com/golang/geo/s2"

	"github.com/tomtom215/waypoint/internal/models"
)

// EarthRadiusKm is the mean Earth radius used for every geodesic distance.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometres:
//
//	d = 2R·atan2(√h, √(1-h)),  h = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//
// s2.LatLng.Distance evaluates exactly this expression and returns the
// central angle; multiplying by R gives the arc length.
func Haversine(a, b models.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}
