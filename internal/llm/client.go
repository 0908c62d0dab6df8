// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

// Package llm talks to an OpenAI-compatible chat completion endpoint and
// builds the intent extraction, mode classification and reply generation
// operations on top of it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/waypoint/internal/upstream"
)

// ProviderName labels the language model in metrics and breaker names.
const ProviderName = "llm"

var (
	// ErrNotConfigured is returned when no endpoint or API key is set.
	ErrNotConfigured = errors.New("language model not configured")

	// ErrEmptyCompletion is returned when the model answers with no content.
	ErrEmptyCompletion = errors.New("language model returned no content")
)

// Completer produces one completion for a system and user message.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config configures the chat completion client.
type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	Temperature       float64
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client calls POST {base}/chat/completions with bearer auth.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	client      *upstream.Client
	limiter     *rate.Limiter
}

// NewClient creates a completion client. breaker may be nil. A zero
// RequestsPerSecond disables client-side rate limiting.
func NewClient(cfg Config, breaker *upstream.Breaker) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      upstream.NewClient(ProviderName, timeout, breaker),
		limiter:     limiter,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete returns the content of the first choice.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.baseURL == "" || c.apiKey == "" {
		return "", ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm rate limit wait: %w", err)
	}

	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: user})

	req := completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	var resp completionResponse
	if err := c.client.PostJSON(ctx, c.baseURL+"/chat/completions", header, req, &resp); err != nil {
		return "", fmt.Errorf("llm completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
