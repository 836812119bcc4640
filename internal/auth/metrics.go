// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Authentication metrics.
var (
	// AuthRequests counts authentication decisions.
	// Labels:
	//   - mode: "jwt", "none"
	//   - outcome: "success", "missing", "invalid", "expired"
	AuthRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookworm_auth_requests_total",
			Help: "Total number of authentication decisions",
		},
		[]string{"mode", "outcome"},
	)

	// TokensIssued counts tokens minted by JWTManager.GenerateToken callers.
	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookworm_auth_tokens_issued_total",
			Help: "Total number of JWTs issued",
		},
	)

	// UserLimiterKeys is the number of readers with a live rate limiter.
	UserLimiterKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookworm_auth_user_limiters",
			Help: "Number of per-user rate limiters currently tracked",
		},
	)
)

// RecordAuth records one authentication decision.
func RecordAuth(mode, outcome string) {
	AuthRequests.WithLabelValues(mode, outcome).Inc()
}
