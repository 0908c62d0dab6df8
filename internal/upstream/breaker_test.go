// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package upstream

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errSimulated = errors.New("simulated provider failure")

func failing(context.Context) (int, error) { return 0, errSimulated }

func TestBreaker_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-opens", DefaultBreakerSettings())
	ctx := context.Background()

	if b.State() != "closed" {
		t.Fatalf("initial state = %s, want closed", b.State())
	}

	// 7 failures and 3 successes: 70% over 10 requests.
	for i := 0; i < 10; i++ {
		i := i
		_, _ = Execute(ctx, b, func(context.Context) (int, error) {
			if i < 7 {
				return 0, errSimulated
			}
			return i, nil
		})
	}

	// ReadyToTrip is evaluated after each failure, so one more is needed
	// once the sample reaches the minimum.
	_, _ = Execute(ctx, b, failing)

	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	called := false
	_, err := Execute(ctx, b, func(context.Context) (int, error) {
		called = true
		return 1, nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("err = %v, want ErrCircuitOpen", err)
	}
	if called {
		t.Error("open breaker must not invoke the call")
	}
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-recovers", BreakerSettings{
		MaxRequests:  1,
		Timeout:      50 * time.Millisecond,
		MinRequests:  2,
		FailureRatio: 0.5,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = Execute(ctx, b, failing)
	}
	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	time.Sleep(80 * time.Millisecond)
	if b.State() != "half-open" {
		t.Fatalf("state = %s, want half-open", b.State())
	}

	got, err := Execute(ctx, b, func(context.Context) (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("Execute = %q, %v", got, err)
	}
	if b.State() != "closed" {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestBreaker_CanceledCallsDoNotTrip(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-canceled", BreakerSettings{MinRequests: 2, FailureRatio: 0.5})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := Execute(ctx, b, func(context.Context) (int, error) {
			return 0, context.Canceled
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestExecute_NilBreakerAndCanceledContext(t *testing.T) {
	t.Parallel()

	got, err := Execute(context.Background(), nil, func(context.Context) (float64, error) {
		return 4.2, nil
	})
	if err != nil || got != 4.2 {
		t.Fatalf("Execute(nil breaker) = %v, %v", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	_, err = Execute(ctx, nil, func(context.Context) (float64, error) {
		called = true
		return 1, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if called {
		t.Error("fn must not run with an already-cancelled context")
	}
}

func TestExecute_NilResult(t *testing.T) {
	t.Parallel()

	b := NewBreaker("test-nil-result", DefaultBreakerSettings())
	got, err := Execute(context.Background(), b, func(context.Context) (any, error) {
		return nil, nil
	})
	if err != nil || got != nil {
		t.Errorf("Execute = %v, %v; want nil, nil", got, err)
	}
}
