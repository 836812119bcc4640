// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/bookworm/internal/models"
	"github.com/tomtom215/bookworm/internal/recommend"
)

// RecentReviewLimit is how many of the reader's reviews the dashboard shows.
const RecentReviewLimit = 5

// ErrMissingDependency is returned by NewLoader when a store or recommender is nil.
var ErrMissingDependency = errors.New("dashboard: store and recommender are required")

// Store is the per-reader data the dashboard reads. *database.DB implements it.
type Store interface {
	ShelfStats(ctx context.Context, userID string) (models.ShelfStats, error)
	CurrentReading(ctx context.Context, userID string) (*models.CurrentReading, error)
	TopGenreName(ctx context.Context, userID string) (string, error)
	RecentReviews(ctx context.Context, userID string, limit int) ([]models.ReviewSummary, error)
}

// Recommender produces the recommendation list. *recommend.Engine implements it.
type Recommender interface {
	Recommend(ctx context.Context, userID string) ([]recommend.Result, error)
}

// Dashboard is everything the home page shows for one reader.
type Dashboard struct {
	Stats           models.ShelfStats      `json:"stats"`
	CurrentReading  *models.CurrentReading `json:"currentReading"`
	TopGenre        string                 `json:"topGenre"`
	RecentReviews   []models.ReviewSummary `json:"recentReviews"`
	Recommendations []recommend.Result     `json:"recommendations"`
	FirstVisit      bool                   `json:"firstVisit"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

// Loader builds dashboards. It is safe for concurrent use.
type Loader struct {
	store       Store
	recommender Recommender
	logger      zerolog.Logger
	now         func() time.Time
}

// NewLoader creates a Loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(store Store, recommender Recommender, logger zerolog.Logger) (*Loader, error) {
	if store == nil || recommender == nil {
		return nil, ErrMissingDependency
	}
	return &Loader{
		store:       store,
		recommender: recommender,
		logger:      logger.With().Str("component", "dashboard").Logger(),
		now:         time.Now,
	}, nil
}

// Load reads every dashboard section for userID concurrently. Any failing
// read fails the load.
func (l *Loader) Load(ctx context.Context, userID string) (*Dashboard, error) {
	start := l.now()
	d := &Dashboard{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := l.store.ShelfStats(gctx, userID)
		if err != nil {
			return fmt.Errorf("load shelf stats: %w", err)
		}
		d.Stats = stats
		return nil
	})

	g.Go(func() error {
		current, err := l.store.CurrentReading(gctx, userID)
		if err != nil {
			return fmt.Errorf("load current reading: %w", err)
		}
		d.CurrentReading = current
		return nil
	})

	g.Go(func() error {
		genre, err := l.store.TopGenreName(gctx, userID)
		if err != nil {
			return fmt.Errorf("load top genre: %w", err)
		}
		d.TopGenre = genre
		return nil
	})

	g.Go(func() error {
		reviews, err := l.store.RecentReviews(gctx, userID, RecentReviewLimit)
		if err != nil {
			return fmt.Errorf("load recent reviews: %w", err)
		}
		d.RecentReviews = reviews
		return nil
	})

	g.Go(func() error {
		recs, err := l.recommender.Recommend(gctx, userID)
		if err != nil {
			return fmt.Errorf("load recommendations: %w", err)
		}
		d.Recommendations = recs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if d.RecentReviews == nil {
		d.RecentReviews = []models.ReviewSummary{}
	}
	if d.Recommendations == nil {
		d.Recommendations = []recommend.Result{}
	}
	d.FirstVisit = d.Stats.TotalBooks == 0
	d.GeneratedAt = l.now().UTC()

	l.logger.Debug().
		Str("user_id", userID).
		Int("total_books", d.Stats.TotalBooks).
		Int("recommendations", len(d.Recommendations)).
		Dur("duration", l.now().Sub(start)).
		Msg("dashboard loaded")

	return d, nil
}
