// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package database

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bookworm/internal/config"
	"github.com/tomtom215/bookworm/internal/logging"
	"github.com/tomtom215/bookworm/internal/metrics"
	"github.com/tomtom215/bookworm/internal/recommend"
)

// CatalogBreakerName labels the catalog breaker in logs and metrics.
const CatalogBreakerName = "catalog"

var _ recommend.Catalog = (*BreakerCatalog)(nil)

// BreakerCatalog wraps a recommend.Catalog with circuit breaker protection.
// When the store keeps failing, reads are rejected immediately with
// gobreaker.ErrOpenState instead of queueing behind a sick database.
//
// The breaker uses real time for its interval and timeout. Tests exercise
// state transitions through execute and a failing fake, not the clock.
type BreakerCatalog struct {
	catalog recommend.Catalog
	cb      *gobreaker.CircuitBreaker[interface{}]
	name    string
}

// NewBreakerCatalog creates a circuit breaker around catalog using cfg.
// The circuit opens when at least cfg.MinRequests calls were seen in the
// current interval and the failure ratio reaches cfg.FailureRatio.
func NewBreakerCatalog(catalog recommend.Catalog, cfg config.BreakerConfig) *BreakerCatalog {
	name := CatalogBreakerName

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: healthyOutcome,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerCatalog{
		catalog: catalog,
		cb:      cb,
		name:    name,
	}
}

// State returns the current breaker state.
func (bc *BreakerCatalog) State() gobreaker.State {
	return bc.cb.State()
}

// execute runs fn through the breaker and records the outcome.
func (bc *BreakerCatalog) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := bc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "rejected").Inc()
			logging.Warn().Str("breaker", bc.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else if healthyOutcome(err) {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "failure").Inc()
			counts := bc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(bc.name).Set(0)
	return result, nil
}

// healthyOutcome reports whether err says nothing about store health: bad
// parameters and callers that went away are not counted as failures.
func healthyOutcome(err error) bool {
	return err == nil ||
		errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, context.Canceled)
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// ShelvedBooks reads the reader's shelves with circuit breaker protection
func (bc *BreakerCatalog) ShelvedBooks(ctx context.Context, userID string) ([]recommend.ShelvedBook, error) {
	return castResult[[]recommend.ShelvedBook](bc.execute(func() (interface{}, error) {
		return bc.catalog.ShelvedBooks(ctx, userID)
	}))
}

// UserRatings reads the reader's ratings with circuit breaker protection
func (bc *BreakerCatalog) UserRatings(ctx context.Context, userID string) ([]recommend.Rating, error) {
	return castResult[[]recommend.Rating](bc.execute(func() (interface{}, error) {
		return bc.catalog.UserRatings(ctx, userID)
	}))
}

// CandidatesByGenre reads genre candidates with circuit breaker protection
func (bc *BreakerCatalog) CandidatesByGenre(ctx context.Context, q recommend.CandidateQuery) ([]recommend.CandidateBook, error) {
	return castResult[[]recommend.CandidateBook](bc.execute(func() (interface{}, error) {
		return bc.catalog.CandidatesByGenre(ctx, q)
	}))
}

// MostShelved reads the popular set with circuit breaker protection
func (bc *BreakerCatalog) MostShelved(ctx context.Context, q recommend.CandidateQuery) ([]recommend.CandidateBook, error) {
	return castResult[[]recommend.CandidateBook](bc.execute(func() (interface{}, error) {
		return bc.catalog.MostShelved(ctx, q)
	}))
}

// CountBooks counts the catalog with circuit breaker protection
func (bc *BreakerCatalog) CountBooks(ctx context.Context) (int, error) {
	return castResult[int](bc.execute(func() (interface{}, error) {
		return bc.catalog.CountBooks(ctx)
	}))
}

// SampleBooks reads the discovery slice with circuit breaker protection
func (bc *BreakerCatalog) SampleBooks(ctx context.Context, q recommend.CandidateQuery) ([]recommend.CandidateBook, error) {
	return castResult[[]recommend.CandidateBook](bc.execute(func() (interface{}, error) {
		return bc.catalog.SampleBooks(ctx, q)
	}))
}
