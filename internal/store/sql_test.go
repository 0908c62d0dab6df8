// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// setupTestStore opens a migrated, seeded SQLite catalog in a temp dir.
func setupTestStore(t *testing.T) *SQLStore {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "catalog.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	s, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	catalog, err := LoadSeed(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if err := s.Seed(context.Background(), catalog); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return s
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestSQLStore_GetAll(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	locations, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	if len(locations) != 4 {
		t.Fatalf("len = %d, want 4 active locations", len(locations))
	}

	byID := map[string]int{}
	for i, l := range locations {
		byID[l.ID] = i
		if !l.Active {
			t.Errorf("%s: inactive location returned", l.ID)
		}
		if l.Categories == nil {
			t.Errorf("%s: Categories must not be nil", l.ID)
		}
	}
	if _, ok := byID["closed-gallery"]; ok {
		t.Error("inactive location closed-gallery returned")
	}

	wr := locations[byID["war-remnants"]]
	if wr.NameVI != "Bảo tàng Chứng tích Chiến tranh" || wr.District != "District 3" {
		t.Errorf("war-remnants = %+v", wr)
	}
	if wr.Rating == nil || *wr.Rating != 4.7 {
		t.Errorf("war-remnants rating = %v", wr.Rating)
	}
	if len(wr.Categories) != 2 || wr.Categories[0] != "landmark" || wr.Categories[1] != "museum" {
		t.Errorf("war-remnants categories = %v", wr.Categories)
	}
	if wr.Coordinate.Latitude != 10.7795 || wr.Coordinate.Longitude != 106.6921 {
		t.Errorf("war-remnants coordinate = %v", wr.Coordinate)
	}

	ws := locations[byID["the-workshop"]]
	if ws.Rating != nil {
		t.Errorf("the-workshop rating = %v, want nil", *ws.Rating)
	}
	if ws.PriceLevel != 2 {
		t.Errorf("the-workshop price level = %d", ws.PriceLevel)
	}

	// Ordered by id.
	for i := 1; i < len(locations); i++ {
		if locations[i-1].ID > locations[i].ID {
			t.Errorf("locations not ordered by id: %s before %s", locations[i-1].ID, locations[i].ID)
		}
	}
}

func TestSQLStore_Users(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "u-an")
	if err != nil || !ok {
		t.Errorf("Exists(u-an) = %v, %v", ok, err)
	}
	ok, err = s.Exists(ctx, "nobody")
	if err != nil || ok {
		t.Errorf("Exists(nobody) = %v, %v", ok, err)
	}

	if err := RequireUser(ctx, s, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RequireUser(nobody) = %v, want ErrNotFound", err)
	}
	if err := RequireUser(ctx, s, "u-binh"); err != nil {
		t.Errorf("RequireUser(u-binh) = %v", err)
	}
}

func TestSQLStore_GetHistory(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	history, err := s.GetHistory(ctx, "u-an")
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len = %d, want 2", len(history))
	}
	if history[0].LocationID != "war-remnants" || history[0].Rating != 5 {
		t.Errorf("history[0] = %+v", history[0])
	}
	if history[0].District != "District 3" || len(history[0].Categories) != 2 {
		t.Errorf("history[0] join = %+v", history[0])
	}

	for _, user := range []string{"u-binh", "nobody"} {
		h, err := s.GetHistory(ctx, user)
		if err != nil {
			t.Fatalf("GetHistory(%s): %v", user, err)
		}
		if h == nil || len(h) != 0 {
			t.Errorf("GetHistory(%s) = %#v, want empty slice", user, h)
		}
	}
}

func TestSQLStore_Categories(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	cats, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 4 || cats[0].ID != "cafe" || cats[0].NameVI != "Quán cà phê" {
		t.Errorf("Categories = %+v", cats)
	}
}

func TestSQLStore_SeedIsIdempotent(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	catalog, err := LoadSeed(filepath.Join("testdata", "catalog.yaml"))
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if err := s.Seed(context.Background(), catalog); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	locations, err := s.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(locations) != 4 {
		t.Errorf("len = %d after reseed, want 4", len(locations))
	}
}

func TestDialect(t *testing.T) {
	t.Parallel()

	pg, _ := newDialect(DriverPostgres)
	if got := pg.rebind("SELECT 1 WHERE a = ? AND b = ?"); got != "SELECT 1 WHERE a = $1 AND b = $2" {
		t.Errorf("postgres rebind = %q", got)
	}
	if got := pg.insertIgnore("users", "id", "email"); got != "INSERT INTO users (id, email) VALUES ($1, $2) ON CONFLICT DO NOTHING" {
		t.Errorf("postgres insertIgnore = %q", got)
	}

	my, _ := newDialect(DriverMySQL)
	if got := my.insertIgnore("users", "id"); got != "INSERT IGNORE INTO users (id) VALUES (?)" {
		t.Errorf("mysql insertIgnore = %q", got)
	}

	lite, _ := newDialect(DriverSQLite)
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind = %q", got)
	}
}
