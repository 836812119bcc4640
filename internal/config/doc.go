// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package config provides centralized configuration management for BookWorm.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (config.yaml, /etc/bookworm/config.yaml, or CONFIG_PATH), then
environment variables. Only the variables listed in envMappings are read.

# Sections

  - database: DuckDB path, memory limit, threads, demo seeding, gauge interval
  - server: HTTP listen address, timeout, environment
  - security: JWT secret, auth mode, rate limits, CORS origins
  - logging: level, format, caller
  - recommend: every recommendation engine tunable plus the RNG seed
  - breaker: catalog circuit breaker thresholds

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(cfg.Server.Addr())

A YAML file uses the koanf keys:

	server:
	  port: 8080
	recommend:
	  max_results: 18
	  seed: 42

Config is immutable after Load() and safe for concurrent reads.
*/
package config
