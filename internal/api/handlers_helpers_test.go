// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/bookworm/internal/models"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line1\nline2", `line1\x0aline2`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"ünïcode", "ünïcode"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status:   "success",
		Data:     map[string]int{"n": 1},
		Metadata: models.Metadata{Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "private, no-store" {
		t.Errorf("Cache-Control = %q", cc)
	}
	resp := decodeEnvelope(t, w)
	if resp.Status != "success" || resp.Error != nil {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(w, r, http.StatusInternalServerError, "SOME_CODE", "Something failed", errors.New("secret\ndetail"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Status != "error" || resp.Data != nil {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.Error == nil || resp.Error.Code != "SOME_CODE" || resp.Error.Message != "Something failed" {
		t.Errorf("error = %+v", resp.Error)
	}
	if strings.Contains(w.Body.String(), "secret") {
		t.Error("internal error leaked to the client")
	}
}
