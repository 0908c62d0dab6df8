// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// Coordinate is a WGS84 point. It serialises as {"lat": .., "lng": ..}.
type Coordinate struct {
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lng" validate:"longitude"`
}

// ErrInvalidCoordinate is returned by Coordinate.Validate.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Validate checks that both components are finite and inside their ranges.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// String formats the coordinate as "lat,lng", the form routing providers expect.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// UnmarshalJSON accepts the canonical {"lat","lng"} shape and the long
// {"latitude","longitude"} shape some clients send.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat       *float64 `json:"lat"`
		Lng       *float64 `json:"lng"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	lat, lng := raw.Lat, raw.Lng
	if lat == nil {
		lat = raw.Latitude
	}
	if lng == nil {
		lng = raw.Longitude
	}
	if lat == nil || lng == nil {
		return fmt.Errorf("%w: both latitude and longitude are required", ErrInvalidCoordinate)
	}

	c.Latitude, c.Longitude = *lat, *lng
	return nil
}

// TransportMode selects the routing profile used for travel distance.
type TransportMode string

const (
	ModeCar        TransportMode = "car"
	ModeBike       TransportMode = "bike"
	ModeFoot       TransportMode = "foot"
	ModeMotorcycle TransportMode = "motorcycle"
)

// DefaultTransportMode is used when a request does not name one.
const DefaultTransportMode = ModeCar

// Valid reports whether m is a known transport mode.
func (m TransportMode) Valid() bool {
	switch m {
	case ModeCar, ModeBike, ModeFoot, ModeMotorcycle:
		return true
	}
	return false
}

// OrDefault returns m, or DefaultTransportMode when m is empty.
func (m TransportMode) OrDefault() TransportMode {
	if m == "" {
		return DefaultTransportMode
	}
	return m
}

// DistanceSource records which branch of the resolver produced a distance.
type DistanceSource string

const (
	SourceRouted   DistanceSource = "routed"
	SourceGeodesic DistanceSource = "geodesic"
)
