// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package geo

import (
	"math"
	"testing"

	"github.com/tomtom215/waypoint/internal/models"
)

// reference evaluates the haversine formula directly.
func reference(a, b models.Coordinate) float64 {
	rad := math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * rad
	dLon := (b.Longitude - a.Longitude) * rad
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(a.Latitude*rad)*math.Cos(b.Latitude*rad)*math.Pow(math.Sin(dLon/2), 2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func TestHaversine(t *testing.T) {
	t.Parallel()

	benThanh := models.Coordinate{Latitude: 10.7720, Longitude: 106.6981}
	tests := []struct {
		name string
		a, b models.Coordinate
		want float64
		tol  float64
	}{
		{"same point", benThanh, benThanh, 0, 1e-9},
		{"one degree of latitude", models.Coordinate{Latitude: 0, Longitude: 0}, models.Coordinate{Latitude: 1, Longitude: 0}, 111.195, 0.001},
		{"saigon to hanoi", benThanh, models.Coordinate{Latitude: 21.0285, Longitude: 105.8542}, 1144.0, 1},
		{"antipodal", models.Coordinate{Latitude: 0, Longitude: 0}, models.Coordinate{Latitude: 0, Longitude: 180}, math.Pi * EarthRadiusKm, 1e-6},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Haversine(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("Haversine() = %.4f, want %.4f ± %v", got, tt.want, tt.tol)
			}
			if ref := reference(tt.a, tt.b); math.Abs(got-ref) > 1e-6 {
				t.Errorf("Haversine() = %.9f disagrees with formula %.9f", got, ref)
			}
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	t.Parallel()

	a := models.Coordinate{Latitude: 10.7769, Longitude: 106.7009}
	b := models.Coordinate{Latitude: 10.7798, Longitude: 106.6990}
	if d1, d2 := Haversine(a, b), Haversine(b, a); math.Abs(d1-d2) > 1e-12 {
		t.Errorf("asymmetric distance: %v vs %v", d1, d2)
	}
}
