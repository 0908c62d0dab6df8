// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package geocode

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/waypoint/internal/cache"
	"github.com/tomtom215/waypoint/internal/models"
)

func TestVietMapClient_Geocode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		status  int
		want    models.Coordinate
		wantErr error
	}{
		{
			name:   "feature collection",
			body:   `{"code":"OK","data":{"features":[{"geometry":{"type":"Point","coordinates":[106.698,10.7725]}}]}}`,
			status: 200,
			want:   models.Coordinate{Latitude: 10.7725, Longitude: 106.698},
		},
		{
			name:   "plain list",
			body:   `[{"ref_id":"x","lat":10.7798,"lng":106.699,"name":"Nha tho Duc Ba"}]`,
			status: 200,
			want:   models.Coordinate{Latitude: 10.7798, Longitude: 106.699},
		},
		{name: "empty features", body: `{"code":"OK","data":{"features":[]}}`, status: 200, wantErr: ErrNotFound},
		{name: "code not ok", body: `{"code":"ERROR","message":"bad"}`, status: 200, wantErr: ErrNotFound},
		{name: "empty list", body: `[]`, status: 200, wantErr: ErrNotFound},
		{name: "list without coordinates", body: `[{"name":"x"}]`, status: 200, wantErr: ErrNotFound},
		{name: "out of range", body: `[{"lat":123,"lng":106}]`, status: 200, wantErr: ErrNotFound},
		{name: "provider error", body: `{}`, status: 500, wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search" {
					t.Errorf("path = %s, want /search", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("text") != "Cho Ben Thanh" || q.Get("apikey") != "k" || q.Get("size") != "3" {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewVietMapClient(VietMapConfig{BaseURL: srv.URL, APIKey: "k"}, nil, nil)
			got, err := c.Geocode(context.Background(), "  Cho Ben Thanh ")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Geocode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Geocode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVietMapClient_EmptyName(t *testing.T) {
	t.Parallel()

	c := NewVietMapClient(VietMapConfig{BaseURL: "http://127.0.0.1:1", APIKey: "k"}, nil, nil)
	if _, err := c.Geocode(context.Background(), "   "); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestVietMapClient_CacheByNormalizedName(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `[{"lat":10.7725,"lng":106.698}]`)
	}))
	defer srv.Close()

	c := NewVietMapClient(VietMapConfig{BaseURL: srv.URL, APIKey: "k"}, nil, cache.NewMemory(time.Hour, time.Minute))

	for _, name := range []string{"Ben Thanh Market", "ben thanh market", "  BEN THANH MARKET "} {
		got, err := c.Geocode(context.Background(), name)
		if err != nil {
			t.Fatalf("Geocode(%q): %v", name, err)
		}
		if got.Latitude != 10.7725 {
			t.Errorf("Geocode(%q).Latitude = %v", name, got.Latitude)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
}
