// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookworm/internal/auth"
	"github.com/tomtom215/bookworm/internal/config"
	"github.com/tomtom215/bookworm/internal/dashboard"
	"github.com/tomtom215/bookworm/internal/models"
	"github.com/tomtom215/bookworm/internal/recommend"
)

const testJWTSecret = "test_secret_with_at_least_32_characters_for_testing"

type fakeRecommender struct {
	results []recommend.Result
	outcome recommend.Outcome
	err     error
	stats   recommend.Stats
	gotUser string
}

func (f *fakeRecommender) RecommendWithOutcome(_ context.Context, userID string) ([]recommend.Result, recommend.Outcome, error) {
	f.gotUser = userID
	return f.results, f.outcome, f.err
}

func (f *fakeRecommender) Stats() recommend.Stats {
	return f.stats
}

type fakeDashboard struct {
	d       *dashboard.Dashboard
	err     error
	gotUser string
}

func (f *fakeDashboard) Load(_ context.Context, userID string) (*dashboard.Dashboard, error) {
	f.gotUser = userID
	return f.d, f.err
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) Ping(context.Context) error {
	return f.err
}

type fakeSnapshot struct {
	books int
	ok    bool
}

func (f fakeSnapshot) CatalogBooks() (int, bool) {
	return f.books, f.ok
}

// testSecurityConfig returns JWT settings with rate limiting off.
func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		AuthMode:          "jwt",
		JWTSecret:         testJWTSecret,
		SessionTimeout:    time.Hour,
		RateLimitReqs:     1000,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
		UserRateLimit:     100,
		UserRateBurst:     100,
		CORSOrigins:       []string{"https://bookworm.example.com"},
	}
}

// asUser runs h behind AUTH_MODE=none authentication as userID.
func asUser(t *testing.T, userID string, h http.HandlerFunc) http.Handler {
	t.Helper()
	cfg := testSecurityConfig()
	cfg.AuthMode = "none"
	cfg.DevUserID = userID
	mw := auth.NewMiddleware(cfg, nil)
	t.Cleanup(mw.Stop)
	return mw.Authenticate(h)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	return resp
}

func sampleResults() []recommend.Result {
	return []recommend.Result{
		{
			ID: "b1", Title: "Dune", Author: "Frank Herbert",
			CoverURL:  "https://covers.openlibrary.org/b/id/8479662-L.jpg",
			Genre:     recommend.GenreRef{Name: "Science Fiction"},
			AvgRating: 4.5,
			Count:     recommend.ShelfCount{UserBooks: 7},
		},
		{
			ID: "b2", Title: "Circe", Author: "Madeline Miller",
			Genre: recommend.GenreRef{Name: "Fantasy"},
			Count: recommend.ShelfCount{UserBooks: 2},
		},
	}
}
