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
)

// ErrCodeDashboard is returned when any dashboard section fails.
const ErrCodeDashboard = "DASHBOARD_ERROR"

// Dashboard handles GET /api/v1/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, msgAuthRequired, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	d, err := h.dashboard.Load(ctx, userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeDashboard, "Failed to load dashboard", err)
		return
	}

	respondSuccess(w, d, start)
}
