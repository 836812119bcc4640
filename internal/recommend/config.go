// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package recommend

import (
	"fmt"
)

// Config contains the tunables of the recommendation engine.
type Config struct {
	// MinReadHistory is how many READ books a reader needs before the
	// genre-affinity path runs.
	MinReadHistory int `json:"min_read_history"`

	// TopGenres is how many of the reader's most-read genres are searched.
	TopGenres int `json:"top_genres"`

	// CandidateTake caps the genre-affinity candidate query.
	CandidateTake int `json:"candidate_take"`

	// RatingTolerance is how far below the reader's own average rating a
	// candidate's average may fall and still be kept.
	RatingTolerance float64 `json:"rating_tolerance"`

	// RatingFloor is the lowest threshold the tolerance band may produce.
	RatingFloor float64 `json:"rating_floor"`

	// NeutralPrior stands in for the reader's average when they have rated
	// nothing. It is a fixed prior, not a statistic.
	NeutralPrior float64 `json:"neutral_prior"`

	// FallbackTrigger: fewer personalized results than this runs the
	// popular and discovery fallback.
	FallbackTrigger int `json:"fallback_trigger"`

	// PopularTake is how many most-shelved books the fallback reads.
	PopularTake int `json:"popular_take"`

	// DiscoveryTake is the size of the random-offset sample.
	DiscoveryTake int `json:"discovery_take"`

	// MaxResults bounds every response.
	MaxResults int `json:"max_results"`

	// Seed seeds the engine RNG. Zero seeds from the clock.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MinReadHistory:  3,
		TopGenres:       3,
		CandidateTake:   40,
		RatingTolerance: 1.5,
		RatingFloor:     1,
		NeutralPrior:    3.0,
		FallbackTrigger: 12,
		PopularTake:     15,
		DiscoveryTake:   10,
		MaxResults:      18,
		Seed:            0,
	}
}

// maxQueryLimit mirrors the Limit bound on CandidateQuery.
const maxQueryLimit = 100

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.MinReadHistory < 1 {
		return fmt.Errorf("min_read_history must be positive, got %d", c.MinReadHistory)
	}
	if c.TopGenres < 1 {
		return fmt.Errorf("top_genres must be positive, got %d", c.TopGenres)
	}
	if c.CandidateTake < 1 || c.CandidateTake > maxQueryLimit {
		return fmt.Errorf("candidate_take must be in [1, %d], got %d", maxQueryLimit, c.CandidateTake)
	}
	if c.PopularTake < 1 || c.PopularTake > maxQueryLimit {
		return fmt.Errorf("popular_take must be in [1, %d], got %d", maxQueryLimit, c.PopularTake)
	}
	if c.DiscoveryTake < 1 || c.DiscoveryTake > maxQueryLimit {
		return fmt.Errorf("discovery_take must be in [1, %d], got %d", maxQueryLimit, c.DiscoveryTake)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.FallbackTrigger < 0 || c.FallbackTrigger > c.MaxResults {
		return fmt.Errorf("fallback_trigger must be in [0, max_results], got %d", c.FallbackTrigger)
	}
	if c.RatingTolerance < 0 {
		return fmt.Errorf("rating_tolerance must be non-negative, got %f", c.RatingTolerance)
	}
	if c.RatingFloor < 0 || c.RatingFloor > 5 {
		return fmt.Errorf("rating_floor must be in [0, 5], got %f", c.RatingFloor)
	}
	if c.NeutralPrior < 1 || c.NeutralPrior > 5 {
		return fmt.Errorf("neutral_prior must be in [1, 5], got %f", c.NeutralPrior)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
