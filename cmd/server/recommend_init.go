// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookworm/internal/config"
	"github.com/tomtom215/bookworm/internal/database"
	"github.com/tomtom215/bookworm/internal/recommend"
)

// initRecommend builds the engine over db, wrapped in the catalog circuit
// breaker when BREAKER_ENABLED is set.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, db *database.DB, logger zerolog.Logger) (*recommend.Engine, error) {
	initLog := logger.With().Str("component", "recommend").Logger()

	var catalog recommend.Catalog = db
	if cfg.Breaker.Enabled {
		catalog = database.NewBreakerCatalog(db, cfg.Breaker)
		initLog.Info().
			Uint32("min_requests", cfg.Breaker.MinRequests).
			Float64("failure_ratio", cfg.Breaker.FailureRatio).
			Dur("open_timeout", cfg.Breaker.Timeout).
			Msg("catalog circuit breaker enabled")
	}

	engineCfg := buildEngineConfig(&cfg.Recommend)
	engine, err := recommend.NewEngine(catalog, engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	initLog.Info().
		Int("min_read_history", engineCfg.MinReadHistory).
		Int("top_genres", engineCfg.TopGenres).
		Int("fallback_trigger", engineCfg.FallbackTrigger).
		Int("max_results", engineCfg.MaxResults).
		Bool("seeded", engineCfg.Seed != 0).
		Msg("recommendation engine initialized")

	return engine, nil
}

// buildEngineConfig copies the loaded tunables into the engine config.
func buildEngineConfig(rc *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		MinReadHistory:  rc.MinReadHistory,
		TopGenres:       rc.TopGenres,
		CandidateTake:   rc.CandidateTake,
		RatingTolerance: rc.RatingTolerance,
		RatingFloor:     rc.RatingFloor,
		NeutralPrior:    rc.NeutralPrior,
		FallbackTrigger: rc.FallbackTrigger,
		PopularTake:     rc.PopularTake,
		DiscoveryTake:   rc.DiscoveryTake,
		MaxResults:      rc.MaxResults,
		Seed:            rc.Seed,
	}
}
