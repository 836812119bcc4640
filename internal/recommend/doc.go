// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

// Package recommend implements the BookWorm recommendation engine.
//
// # Strategies
//
// A reader with at least MinReadHistory books on the READ shelf gets the
// genre-affinity path: candidates from their TopGenres most-read genres,
// filtered to those whose approved-review average is at least
// max(RatingFloor, readerAverage-RatingTolerance), sorted by average rating.
// A reader who has rated nothing is given NeutralPrior as their average.
//
// When that path is skipped or returns fewer than FallbackTrigger books, the
// engine reads the PopularTake most-shelved books and a DiscoveryTake sample
// at a random offset, merges them after any personalized results, drops
// duplicates, shuffles, and truncates to MaxResults.
//
// Books the reader has shelved, on any shelf, are never returned.
//
// # Usage
//
//	engine, err := recommend.NewEngine(catalog, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	results, err := engine.Recommend(ctx, userID)
//
// # Thread Safety
//
// The engine keeps no per-reader state. The only shared mutable state is the
// random source, which is guarded by a mutex. Pass WithRand to make runs
// reproducible.
package recommend
