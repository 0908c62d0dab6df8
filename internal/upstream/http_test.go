// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/waypoint/internal/metrics"
)

type payload struct {
	Distance float64 `json:"distance"`
}

func TestGetJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"distance": 1250.5}`)
	}))
	defer srv.Close()

	var out payload
	err := GetJSON(context.Background(), srv.Client(), srv.URL, http.Header{"X-Test": {"yes"}}, &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if out.Distance != 1250.5 {
		t.Errorf("Distance = %v, want 1250.5", out.Distance)
	}
}

func TestGetJSON_StatusError(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", maxErrorBody+100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, long)
	}))
	defer srv.Close()

	err := GetJSON(context.Background(), srv.Client(), srv.URL, nil, &payload{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
	if len(statusErr.Body) != maxErrorBody {
		t.Errorf("body length = %d, want capped at %d", len(statusErr.Body), maxErrorBody)
	}
}

func TestGetJSON_DecodeError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>`)
	}))
	defer srv.Close()

	err := GetJSON(context.Background(), srv.Client(), srv.URL, nil, &payload{})
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("err = %v, want decode error", err)
	}
}

func TestPostJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer k" {
			t.Errorf("Authorization = %q", auth)
		}
		var in payload
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = fmt.Fprintf(w, `{"distance": %v}`, in.Distance*2)
	}))
	defer srv.Close()

	var out payload
	header := http.Header{"Authorization": {"Bearer k"}}
	if err := PostJSON(context.Background(), srv.Client(), srv.URL, header, payload{Distance: 2}, &out); err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if out.Distance != 4 {
		t.Errorf("Distance = %v, want 4", out.Distance)
	}
}

func TestClient_RecordsOutcome(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fail") == "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `{"distance": 1}`)
	}))
	defer srv.Close()

	provider := "test-client-outcome"
	c := NewClient(provider, time.Second, NewBreaker(provider, DefaultBreakerSettings()))

	var out payload
	if err := c.GetJSON(context.Background(), srv.URL+"?apikey=secret", nil, &out); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if err := c.GetJSON(context.Background(), srv.URL+"?fail=1", nil, &out); err == nil {
		t.Fatal("expected error for 500 response")
	}

	if got := testutil.CollectAndCount(metrics.UpstreamRequestDuration); got < 2 {
		t.Errorf("upstream duration series = %d, want at least 2", got)
	}
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewClient("test-timeout", 50*time.Millisecond, nil)
	err := c.GetJSON(context.Background(), srv.URL, nil, &payload{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if got := Outcome(err); got != "timeout" {
		t.Errorf("Outcome = %s, want timeout", got)
	}
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{fmt.Errorf("route: %w", ErrCircuitOpen), "rejected"},
		{context.DeadlineExceeded, "timeout"},
		{context.Canceled, "canceled"},
		{&StatusError{StatusCode: 503}, "status"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
