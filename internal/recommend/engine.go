// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoCatalog is returned by NewEngine when no Catalog is supplied.
var ErrNoCatalog = errors.New("recommend: catalog is required")

// Engine produces book recommendations for a reader. It holds no per-reader
// state; every call reads the catalog afresh. It is safe for concurrent use.
type Engine struct {
	config  *Config
	catalog Catalog
	logger  zerolog.Logger

	// rng is shared by every call and guarded by rngMu.
	rng   *rand.Rand
	rngMu sync.Mutex

	requests     atomic.Int64
	errors       atomic.Int64
	personalized atomic.Int64
	fallback     atomic.Int64
	blended      atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the engine's random source. Tests use it to make the
// discovery offset and the fallback shuffle reproducible.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(catalog Catalog, cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, ErrNoCatalog
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e := &Engine{
		config:  cfg.Clone(),
		catalog: catalog,
		logger:  logger.With().Str("component", "recommend").Logger(),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for recommendation shuffling
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Recommend returns up to MaxResults books for userID, none of which the
// reader has already shelved. An empty catalog or an unknown reader yields
// an empty, non-nil slice. A catalog read failure fails the whole call.
func (e *Engine) Recommend(ctx context.Context, userID string) ([]Result, error) {
	results, _, err := e.RecommendWithOutcome(ctx, userID)
	return results, err
}

// RecommendWithOutcome is Recommend plus a description of which strategy
// served the request, for logging and metrics.
func (e *Engine) RecommendWithOutcome(ctx context.Context, userID string) ([]Result, Outcome, error) {
	start := time.Now()
	e.requests.Add(1)
	logger := e.logger.With().Str("user_id", userID).Logger()

	results, outcome, err := e.recommend(ctx, userID)
	outcome.Duration = time.Since(start)
	if err != nil {
		e.errors.Add(1)
		return nil, outcome, err
	}

	e.countStrategy(outcome.Strategy)
	logger.Debug().
		Str("strategy", string(outcome.Strategy)).
		Int("read_books", outcome.ReadBooks).
		Int("excluded", outcome.Excluded).
		Int("personalized", outcome.Personalized).
		Int("returned", outcome.Returned).
		Dur("duration", outcome.Duration).
		Msg("recommendations computed")

	return results, outcome, nil
}

func (e *Engine) recommend(ctx context.Context, userID string) ([]Result, Outcome, error) {
	h, err := e.gatherHistory(ctx, userID)
	if err != nil {
		return nil, Outcome{}, err
	}

	outcome := Outcome{
		Strategy:  StrategyFallback,
		ReadBooks: len(h.readGenres),
		Excluded:  len(h.exclude),
	}

	var picked []Result
	if len(h.readGenres) >= e.config.MinReadHistory {
		picked, err = e.personalize(ctx, h)
		if err != nil {
			return nil, outcome, err
		}
		outcome.Personalized = len(picked)
		outcome.Strategy = StrategyPersonalized
	}

	if len(picked) < e.config.FallbackTrigger {
		if outcome.Strategy == StrategyPersonalized {
			outcome.Strategy = StrategyBlended
		}
		picked, err = e.discover(ctx, h, picked)
		if err != nil {
			return nil, outcome, err
		}
	}

	if picked == nil {
		picked = []Result{}
	}
	outcome.Returned = len(picked)
	return picked, outcome, nil
}

// history is what the engine knows about the reader for one call.
type history struct {
	exclude    map[string]struct{}
	excludeIDs []string // sorted copy of exclude, for queries
	readGenres []string // genre of each READ book
	avgRating  float64
}

// gatherHistory reads the reader's shelves and ratings concurrently.
func (e *Engine) gatherHistory(ctx context.Context, userID string) (history, error) {
	var (
		shelved []ShelvedBook
		ratings []Rating
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shelved, err = e.catalog.ShelvedBooks(gctx, userID)
		if err != nil {
			return fmt.Errorf("read shelved books: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ratings, err = e.catalog.UserRatings(gctx, userID)
		if err != nil {
			return fmt.Errorf("read user ratings: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return history{}, err
	}

	h := history{
		exclude:   make(map[string]struct{}, len(shelved)),
		avgRating: userAverage(ratings, e.config.NeutralPrior),
	}
	for _, sb := range shelved {
		h.exclude[sb.BookID] = struct{}{}
		if sb.Shelf == ShelfRead {
			h.readGenres = append(h.readGenres, sb.GenreID)
		}
	}

	h.excludeIDs = make([]string, 0, len(h.exclude))
	for id := range h.exclude {
		h.excludeIDs = append(h.excludeIDs, id)
	}
	sort.Strings(h.excludeIDs)

	return h, nil
}

func (e *Engine) countStrategy(s Strategy) {
	switch s {
	case StrategyPersonalized:
		e.personalized.Add(1)
	case StrategyFallback:
		e.fallback.Add(1)
	case StrategyBlended:
		e.blended.Add(1)
	}
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:     e.requests.Load(),
		Errors:       e.errors.Load(),
		Personalized: e.personalized.Load(),
		Fallback:     e.fallback.Load(),
		Blended:      e.blended.Load(),
	}
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}
