// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookworm/internal/models"
	"github.com/tomtom215/bookworm/internal/recommend"
)

type fakeStore struct {
	stats      models.ShelfStats
	current    *models.CurrentReading
	genre      string
	reviews    []models.ReviewSummary
	failOn     string
	gotLimit   int
	blockUntil bool
}

var errStore = errors.New("store down")

func (f *fakeStore) ShelfStats(ctx context.Context, _ string) (models.ShelfStats, error) {
	if f.failOn == "stats" {
		return models.ShelfStats{}, errStore
	}
	return f.stats, nil
}

func (f *fakeStore) CurrentReading(ctx context.Context, _ string) (*models.CurrentReading, error) {
	if f.failOn == "current" {
		return nil, errStore
	}
	if f.blockUntil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.current, nil
}

func (f *fakeStore) TopGenreName(context.Context, string) (string, error) {
	if f.failOn == "genre" {
		return "", errStore
	}
	return f.genre, nil
}

func (f *fakeStore) RecentReviews(_ context.Context, _ string, limit int) ([]models.ReviewSummary, error) {
	if f.failOn == "reviews" {
		return nil, errStore
	}
	f.gotLimit = limit
	return f.reviews, nil
}

type fakeRecommender struct {
	results []recommend.Result
	err     error
}

func (f *fakeRecommender) Recommend(context.Context, string) ([]recommend.Result, error) {
	return f.results, f.err
}

func newTestLoader(t *testing.T, store Store, rec Recommender) *Loader {
	t.Helper()
	l, err := NewLoader(store, rec, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	l.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return l
}

func TestNewLoader_RequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader(nil, &fakeRecommender{}, zerolog.Nop()); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("nil store: err = %v", err)
	}
	if _, err := NewLoader(&fakeStore{}, nil, zerolog.Nop()); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("nil recommender: err = %v", err)
	}
}

func TestLoad_AssemblesSections(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		stats: models.ShelfStats{BooksRead: 2, WantToRead: 1, CurrentlyReading: 1, TotalBooks: 4},
		current: &models.CurrentReading{
			BookID: "b-dune", Title: "Dune", TotalPages: 412, Progress: 185,
			Percent: models.ProgressPercent(185, 412),
		},
		genre: "Fantasy",
		reviews: []models.ReviewSummary{
			{ID: "r1", Rating: 5, Status: models.ReviewApproved, Book: models.BookRef{ID: "b1", Title: "The Hobbit"}},
		},
	}
	rec := &fakeRecommender{results: []recommend.Result{{ID: "b9", Title: "Circe"}}}

	got, err := newTestLoader(t, store, rec).Load(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Dashboard{
		Stats:           store.stats,
		CurrentReading:  store.current,
		TopGenre:        "Fantasy",
		RecentReviews:   store.reviews,
		Recommendations: rec.results,
		FirstVisit:      false,
		GeneratedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dashboard mismatch (-want +got):\n%s", diff)
	}
	if store.gotLimit != RecentReviewLimit {
		t.Errorf("review limit = %d, want %d", store.gotLimit, RecentReviewLimit)
	}
	if got.CurrentReading.Percent != 44 {
		t.Errorf("percent = %d, want 44", got.CurrentReading.Percent)
	}
}

func TestLoad_FirstVisit(t *testing.T) {
	t.Parallel()

	got, err := newTestLoader(t, &fakeStore{}, &fakeRecommender{}).Load(context.Background(), "new-reader")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.FirstVisit {
		t.Error("FirstVisit = false for a reader with no shelves")
	}
	if got.CurrentReading != nil {
		t.Errorf("CurrentReading = %+v, want nil", got.CurrentReading)
	}
	if got.RecentReviews == nil || got.Recommendations == nil {
		t.Error("empty sections must be non-nil slices")
	}
}

func TestLoad_AnyFailureFailsLoad(t *testing.T) {
	t.Parallel()

	for _, section := range []string{"stats", "current", "genre", "reviews"} {
		t.Run(section, func(t *testing.T) {
			t.Parallel()
			_, err := newTestLoader(t, &fakeStore{failOn: section}, &fakeRecommender{}).
				Load(context.Background(), "u1")
			if !errors.Is(err, errStore) {
				t.Errorf("err = %v, want %v", err, errStore)
			}
		})
	}

	t.Run("recommendations", func(t *testing.T) {
		t.Parallel()
		recErr := errors.New("catalog unavailable")
		_, err := newTestLoader(t, &fakeStore{}, &fakeRecommender{err: recErr}).
			Load(context.Background(), "u1")
		if !errors.Is(err, recErr) {
			t.Errorf("err = %v, want %v", err, recErr)
		}
	})
}

func TestLoad_FailureCancelsSiblings(t *testing.T) {
	t.Parallel()

	// CurrentReading blocks until its context is canceled; the failing
	// recommender must unblock it.
	store := &fakeStore{blockUntil: true}
	recErr := errors.New("boom")

	done := make(chan error, 1)
	go func() {
		_, err := newTestLoader(t, store, &fakeRecommender{err: recErr}).Load(context.Background(), "u1")
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, recErr) {
			t.Errorf("err = %v, want %v", err, recErr)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Load did not return after a sibling failed")
	}
}
