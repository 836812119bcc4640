// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookworm/internal/metrics"
)

// DefaultStatsInterval is used when no poll interval is configured.
const DefaultStatsInterval = time.Minute

// pollTimeout bounds a single CountBooks call.
const pollTimeout = 5 * time.Second

// BookCounter counts the catalog. Satisfied by *database.DB and
// *database.BreakerCatalog.
type BookCounter interface {
	CountBooks(ctx context.Context) (int, error)
}

// CatalogStatsService polls the catalog size, publishes it as the
// bookworm_catalog_books gauge and keeps the last successful value for the
// readiness probe.
type CatalogStatsService struct {
	counter  BookCounter
	interval time.Duration
	logger   zerolog.Logger
	name     string

	books  atomic.Int64
	polled atomic.Bool
}

// NewCatalogStatsService creates the poller. interval <= 0 uses DefaultStatsInterval.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogStatsService(counter BookCounter, interval time.Duration, logger zerolog.Logger) *CatalogStatsService {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &CatalogStatsService{
		counter:  counter,
		interval: interval,
		logger:   logger.With().Str("service", "catalog-stats").Logger(),
		name:     "catalog-stats",
	}
}

// Serve implements suture.Service. It polls once immediately, then on every
// tick until ctx is canceled. Poll failures are logged and the last good
// value is kept.
func (s *CatalogStatsService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("catalog stats poller starting")

	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

func (s *CatalogStatsService) poll(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	n, err := s.counter.CountBooks(pollCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("catalog count failed")
		}
		return
	}

	s.books.Store(int64(n))
	s.polled.Store(true)
	metrics.SetCatalogBooks(n)
}

// CatalogBooks returns the last polled catalog size. ok is false until the
// first successful poll.
func (s *CatalogStatsService) CatalogBooks() (int, bool) {
	if !s.polled.Load() {
		return 0, false
	}
	return int(s.books.Load()), true
}

// String names the service in supervisor events.
func (s *CatalogStatsService) String() string {
	return s.name
}
