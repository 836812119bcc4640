// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
}

// DatabaseConfig holds DuckDB catalog store settings.
//
// Environment Variables:
//   - DUCKDB_PATH: database file path, ":memory:" for an in-process store
//   - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
//   - DUCKDB_THREADS: worker threads, 0 uses runtime.NumCPU()
//   - SEED_MOCK_DATA: insert the demo catalog on startup
//   - CATALOG_STATS_INTERVAL: how often catalog gauges are refreshed
type DatabaseConfig struct {
	Path          string        `koanf:"path"`
	MaxMemory     string        `koanf:"max_memory"`
	Threads       int           `koanf:"threads"`
	SeedMockData  bool          `koanf:"seed_mock_data"`
	StatsInterval time.Duration `koanf:"stats_interval"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// SecurityConfig holds authentication and request limiting settings.
//
// AuthMode is "jwt" (bearer tokens signed with JWTSecret) or "none". With
// "none" every request is served as the user named by DevUserID, which is
// only accepted outside production.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	DevUserID         string        `koanf:"dev_user_id"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	UserRateLimit     float64       `koanf:"user_rate_limit"` // recommendation requests per second per user
	UserRateBurst     int           `koanf:"user_rate_burst"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig carries the recommendation engine tunables. cmd/server
// copies it into recommend.Config.
//
// Environment Variables (all optional):
//   - RECOMMEND_MIN_READ_HISTORY, RECOMMEND_TOP_GENRES, RECOMMEND_CANDIDATE_TAKE
//   - RECOMMEND_RATING_TOLERANCE, RECOMMEND_RATING_FLOOR, RECOMMEND_NEUTRAL_PRIOR
//   - RECOMMEND_FALLBACK_TRIGGER, RECOMMEND_POPULAR_TAKE, RECOMMEND_DISCOVERY_TAKE
//   - RECOMMEND_MAX_RESULTS, RECOMMEND_SEED (0 seeds from the clock)
type RecommendConfig struct {
	MinReadHistory  int     `koanf:"min_read_history"`
	TopGenres       int     `koanf:"top_genres"`
	CandidateTake   int     `koanf:"candidate_take"`
	RatingTolerance float64 `koanf:"rating_tolerance"`
	RatingFloor     float64 `koanf:"rating_floor"`
	NeutralPrior    float64 `koanf:"neutral_prior"`
	FallbackTrigger int     `koanf:"fallback_trigger"`
	PopularTake     int     `koanf:"popular_take"`
	DiscoveryTake   int     `koanf:"discovery_take"`
	MaxResults      int     `koanf:"max_results"`
	Seed            int64   `koanf:"seed"`
}

// BreakerConfig holds the catalog circuit breaker settings.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"` // probes allowed while half-open
	Interval     time.Duration `koanf:"interval"`     // closed-state counter reset period
	Timeout      time.Duration `koanf:"timeout"`      // open-state duration before half-open
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
