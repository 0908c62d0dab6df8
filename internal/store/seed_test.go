// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	c, err := LoadSeed(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(c.Categories) != 4 || len(c.Locations) != 5 || len(c.Users) != 2 || len(c.Reviews) != 2 {
		t.Errorf("catalog sizes = %d/%d/%d/%d", len(c.Categories), len(c.Locations), len(c.Users), len(c.Reviews))
	}

	var closed, market bool
	for _, l := range c.Locations {
		loc := l.ToLocation()
		switch loc.ID {
		case "closed-gallery":
			closed = !loc.Active
		case "ben-thanh":
			market = loc.Active && loc.Coordinate.Latitude == 10.7725 && loc.NameVI == "Chợ Bến Thành"
		}
	}
	if !closed {
		t.Error("closed-gallery should be inactive")
	}
	if !market {
		t.Error("ben-thanh should be active with its coordinate and localized name")
	}
}

func TestLoadSeed_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown category",
			yaml:    "locations:\n  - {id: a, name: A, lat: 10, lng: 106, categories: [nope]}\n",
			wantErr: "unknown category",
		},
		{
			name:    "bad latitude",
			yaml:    "locations:\n  - {id: a, name: A, lat: 100, lng: 106}\n",
			wantErr: "invalid coordinate",
		},
		{
			name:    "rating out of range",
			yaml:    "locations:\n  - {id: a, name: A, lat: 10, lng: 106, rating: 7}\n",
			wantErr: "rating",
		},
		{
			name:    "review of unknown user",
			yaml:    "locations:\n  - {id: a, name: A, lat: 10, lng: 106}\nreviews:\n  - {id: r, user_id: x, location_id: a, rating: 4}\n",
			wantErr: "unknown user",
		},
		{
			name:    "review rating",
			yaml:    "locations:\n  - {id: a, name: A, lat: 10, lng: 106}\nusers:\n  - {id: x}\nreviews:\n  - {id: r, user_id: x, location_id: a, rating: 0}\n",
			wantErr: "outside 1-5",
		},
		{
			name:    "malformed yaml",
			yaml:    "locations: [",
			wantErr: "parse seed file",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "seed.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadSeed(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
