// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/bookworm/internal/auth"
	"github.com/tomtom215/bookworm/internal/logging"
	"github.com/tomtom215/bookworm/internal/metrics"
	"github.com/tomtom215/bookworm/internal/recommend"
)

// Error codes and messages of the recommendation routes.
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeRecommendation     = "RECOMMENDATION_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	msgAuthRequired           = "Authentication required"
	msgRecommendationsFailure = "Failed to fetch recommendations"
)

// Recommendations handles GET /api/v1/recommendations.
//
// The body is a bare JSON array of up to 18 books, never null. Any failure
// reading the catalog is answered with 500 and no partial list.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, msgAuthRequired, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	results, outcome, err := h.recommender.RecommendWithOutcome(ctx, userID)
	metrics.RecordRecommendation(string(outcome.Strategy), len(results), time.Since(start), err)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeRecommendation, msgRecommendationsFailure, err)
		return
	}

	if results == nil {
		results = []recommend.Result{}
	}

	logging.Ctx(r.Context()).Debug().
		Str("strategy", string(outcome.Strategy)).
		Int("count", len(results)).
		Msg("Recommendations served")

	writeJSON(w, http.StatusOK, results)
}

// RecommendationStats handles GET /api/v1/recommendations/stats.
func (h *Handler) RecommendationStats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, h.recommender.Stats(), time.Now())
}
