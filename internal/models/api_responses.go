// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package models

import (
	"time"
)

// APIResponse is the envelope used by every endpoint except the
// recommendations list, which is served as a bare array.
//
// Status field values:
//   - "success": see Data
//   - "error": see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"},
//	  "error": {
//	    "code": "UNAUTHORIZED",
//	    "message": "Authentication required"
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes used by the service:
//   - UNAUTHORIZED: missing or invalid bearer token
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - RECOMMENDATION_ERROR: the recommendation engine failed
//   - DASHBOARD_ERROR: the dashboard could not be assembled
//   - SERVICE_UNAVAILABLE: readiness probe failed
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	CatalogBooks      int     `json:"catalog_books"`
	Uptime            float64 `json:"uptime_seconds"`
}
