// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/waypoint/internal/logging"
	"github.com/tomtom215/waypoint/internal/metrics"
)

const (
	// maxErrorBody caps how much of a non-2xx body is kept on StatusError.
	maxErrorBody = 64 << 10
	// maxResponseBody caps decoded success bodies.
	maxResponseBody = 8 << 20
)

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// GetJSON performs a GET and decodes the JSON response into out.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	copyHeader(req.Header, header)
	req.Header.Set("Accept", "application/json")

	return do(client, req, out)
}

// PostJSON encodes in as the request body, POSTs it and decodes the JSON
// response into out.
func PostJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	copyHeader(req.Header, header)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return do(client, req, out)
}

func do(client *http.Client, req *http.Request, out any) error {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// Client is a provider-scoped HTTP client: every call runs under the
// provider's breaker with its own timeout and is recorded in metrics.
type Client struct {
	provider string
	http     *http.Client
	breaker  *Breaker
}

// NewClient creates a Client. A zero timeout leaves the request bounded only
// by the caller's context. breaker may be nil.
func NewClient(provider string, timeout time.Duration, breaker *Breaker) *Client {
	return &Client{
		provider: provider,
		http:     &http.Client{Timeout: timeout},
		breaker:  breaker,
	}
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Provider returns the provider label used in metrics.
func (c *Client) Provider() string {
	return c.provider
}

// GetJSON performs a breaker-protected GET.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	return c.call(ctx, http.MethodGet, rawURL, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, GetJSON(ctx, c.http, rawURL, header, out)
	})
}

// PostJSON performs a breaker-protected POST.
func (c *Client) PostJSON(ctx context.Context, rawURL string, header http.Header, in, out any) error {
	return c.call(ctx, http.MethodPost, rawURL, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, PostJSON(ctx, c.http, rawURL, header, in, out)
	})
}

func (c *Client) call(ctx context.Context, method, rawURL string, fn func(context.Context) (struct{}, error)) error {
	start := time.Now()
	_, err := Execute(ctx, c.breaker, fn)
	duration := time.Since(start)

	outcome := Outcome(err)
	metrics.RecordUpstreamCall(c.provider, outcome, duration)

	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("provider", c.provider).
			Str("method", method).
			Str("url", logging.RedactURL(rawURL)).
			Str("outcome", outcome).
			Dur("duration", duration).
			Msg("Upstream call failed")
		return err
	}

	logging.Ctx(ctx).Debug().
		Str("provider", c.provider).
		Str("method", method).
		Str("url", logging.RedactURL(rawURL)).
		Dur("duration", duration).
		Msg("Upstream call")
	return nil
}

// Outcome classifies an upstream error for metrics labels.
func Outcome(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCircuitOpen):
		return "rejected"
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &statusErr):
		return "status"
	default:
		return "error"
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
