// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package recommend

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// discover runs the fallback path. The popular set and the random-offset
// discovery sample are read concurrently, merged after the already picked
// results, deduplicated (first occurrence wins), truncated and shuffled.
func (e *Engine) discover(ctx context.Context, h history, picked []Result) ([]Result, error) {
	var popular, sampled []CandidateBook

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		popular, err = e.catalog.MostShelved(gctx, CandidateQuery{
			ExcludeIDs: h.excludeIDs,
			Limit:      e.config.PopularTake,
		})
		if err != nil {
			return fmt.Errorf("read popular books: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		total, err := e.catalog.CountBooks(gctx)
		if err != nil {
			return fmt.Errorf("count books: %w", err)
		}
		sampled, err = e.catalog.SampleBooks(gctx, CandidateQuery{
			ExcludeIDs: h.excludeIDs,
			Limit:      e.config.DiscoveryTake,
			Offset:     e.discoveryOffset(total),
		})
		if err != nil {
			return fmt.Errorf("sample books: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(picked)+len(popular)+len(sampled))
	keep := func(id string) bool {
		if _, dup := seen[id]; dup {
			return false
		}
		if _, excluded := h.exclude[id]; excluded {
			return false
		}
		seen[id] = struct{}{}
		return true
	}

	merged := make([]Result, 0, len(picked)+len(popular)+len(sampled))
	for _, r := range picked {
		if keep(r.ID) {
			merged = append(merged, r)
		}
	}
	kept := len(merged)
	for _, c := range popular {
		if keep(c.ID) {
			merged = append(merged, toResult(c))
		}
	}
	for _, c := range sampled {
		if keep(c.ID) {
			merged = append(merged, toResult(c))
		}
	}

	// Personalized results always survive the cap; the popular and discovery
	// additions compete for the remaining slots.
	if len(merged) > e.config.MaxResults {
		extra := merged[kept:]
		e.shuffle(extra)
		room := e.config.MaxResults - kept
		if room < 0 {
			room = 0
		}
		merged = merged[:kept+room]
	}
	e.shuffle(merged)
	if len(merged) > e.config.MaxResults {
		merged = merged[:e.config.MaxResults]
	}
	return merged, nil
}

// discoveryOffset picks the random skip for the discovery sample. Catalogs no
// larger than the sample always start at 0.
func (e *Engine) discoveryOffset(total int) int {
	span := total - e.config.DiscoveryTake
	if span <= 0 {
		return 0
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(span)
}

// shuffle applies a uniform Fisher-Yates permutation in place.
func (e *Engine) shuffle(results []Result) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(results), func(i, j int) {
		results[i], results[j] = results[j], results[i]
	})
}
