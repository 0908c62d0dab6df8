// Waypoint - Sightseeing Recommendation and Conversational Trip Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint answers with.
//
// Successful response:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...], "total_candidates_considered": 42},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 180}
//	}
//
// Error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "USER_NOT_FOUND", "message": "user not found"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes: VALIDATION_ERROR, INVALID_JSON, USER_NOT_FOUND, START_NOT_FOUND,
// RECOMMENDATION_ERROR, CHAT_ERROR, RATE_LIMIT_EXCEEDED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned in APIError.Code.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeStartNotFound    = "START_NOT_FOUND"
	ErrCodeRecommendation   = "RECOMMENDATION_ERROR"
	ErrCodeChat             = "CHAT_ERROR"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// HealthStatus is the readiness probe payload.
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
	Uptime  float64           `json:"uptime_seconds"`
}
