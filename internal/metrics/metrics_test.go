// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))

	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 120*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestCounterHelpers(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		value  func() float64
	}{
		{
			name:   "distance resolution",
			record: func() { RecordDistanceResolution("geodesic") },
			value:  func() float64 { return testutil.ToFloat64(DistanceResolutions.WithLabelValues("geodesic")) },
		},
		{
			name:   "cache hit",
			record: func() { RecordCacheLookup("routing", true) },
			value:  func() float64 { return testutil.ToFloat64(CacheLookups.WithLabelValues("routing", "hit")) },
		},
		{
			name:   "cache miss",
			record: func() { RecordCacheLookup("geocoding", false) },
			value:  func() float64 { return testutil.ToFloat64(CacheLookups.WithLabelValues("geocoding", "miss")) },
		},
		{
			name:   "llm fallback",
			record: func() { RecordLLMFallback("classify_mode", "upstream") },
			value:  func() float64 { return testutil.ToFloat64(LLMFallbacks.WithLabelValues("classify_mode", "upstream")) },
		},
		{
			name:   "mode decision",
			record: func() { RecordModeDecision("recommend") },
			value:  func() float64 { return testutil.ToFloat64(ModeDecisions.WithLabelValues("recommend")) },
		},
		{
			name:   "chat outcome",
			record: func() { RecordChatOutcome("recommend_chat", "ask_start") },
			value:  func() float64 { return testutil.ToFloat64(ChatOutcomes.WithLabelValues("recommend_chat", "ask_start")) },
		},
		{
			name:   "store error",
			record: func() { RecordStoreQuery("sqlite", "get_all", time.Millisecond, errors.New("boom")) },
			value:  func() float64 { return testutil.ToFloat64(StoreQueryErrors.WithLabelValues("sqlite", "get_all")) },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			before := tt.value()
			tt.record()
			if after := tt.value(); after-before != 1 {
				t.Errorf("expected +1, got %v", after-before)
			}
		})
	}
}

func TestRecordStoreQuerySuccessDoesNotCountError(t *testing.T) {
	before := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("postgres", "history"))
	RecordStoreQuery("postgres", "history", time.Millisecond, nil)
	if after := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("postgres", "history")); after != before {
		t.Errorf("successful query must not count as error")
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	before := testutil.ToFloat64(DistanceResolutions.WithLabelValues("routed"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordDistanceResolution("routed")
			RecordRanking("ok", 10, time.Millisecond)
			RecordUpstreamCall("routing", "success", time.Millisecond)
		}()
	}
	wg.Wait()

	if after := testutil.ToFloat64(DistanceResolutions.WithLabelValues("routed")); after-before != 50 {
		t.Errorf("expected 50 routed resolutions, got %v", after-before)
	}
}
