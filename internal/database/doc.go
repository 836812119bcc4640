// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

// Package database provides catalog data access for BookWorm on top of DuckDB.
//
// # Overview
//
// DB owns a single DuckDB connection pool and implements the read side the
// rest of the service needs:
//   - recommend.Catalog: shelves, ratings and the three candidate sources
//     (genre matches, most shelved, id-ordered sample)
//   - dashboard.Store: shelf counters, current reading, top genre and recent reviews
//
// # Files
//
//   - database.go: lifecycle, connection pool and per-query timeouts
//   - schema.go: table and index creation (genres, users, books, user_books, reviews)
//   - catalog.go: recommendation reads
//   - dashboard.go: dashboard reads
//   - query_builder.go: parameterized IN / NOT IN clause building
//   - breaker.go: gobreaker wrapper around any recommend.Catalog
//   - seed.go: idempotent demo catalog
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	var catalog recommend.Catalog = db
//	if cfg.Breaker.Enabled {
//	    catalog = database.NewBreakerCatalog(db, cfg.Breaker)
//	}
//
// # Errors
//
// Invalid candidate parameters are rejected with ErrInvalidQuery before any
// SQL is built. Other errors are wrapped with %w and carry the operation name.
// The circuit breaker does not count ErrInvalidQuery or context.Canceled as
// store failures.
//
// # Testing
//
// Tests run against an in-memory DuckDB seeded per test; see setupTestDB.
package database
