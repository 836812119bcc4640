// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// personalize runs the genre-affinity path: candidates from the reader's
// most-read genres, kept if their average clears the reader's threshold,
// best rated first.
func (e *Engine) personalize(ctx context.Context, h history) ([]Result, error) {
	genres := topGenres(h.readGenres, e.config.TopGenres)

	candidates, err := e.catalog.CandidatesByGenre(ctx, CandidateQuery{
		ExcludeIDs: h.excludeIDs,
		GenreIDs:   genres,
		Limit:      e.config.CandidateTake,
	})
	if err != nil {
		return nil, fmt.Errorf("read genre candidates: %w", err)
	}

	threshold := e.config.ratingThreshold(h.avgRating)
	kept := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if _, excluded := h.exclude[c.ID]; excluded {
			continue
		}
		r := toResult(c)
		if r.AvgRating >= threshold {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].AvgRating != kept[j].AvgRating {
			return kept[i].AvgRating > kept[j].AvgRating
		}
		if kept[i].Count.UserBooks != kept[j].Count.UserBooks {
			return kept[i].Count.UserBooks > kept[j].Count.UserBooks
		}
		return kept[i].ID < kept[j].ID
	})

	if len(kept) > e.config.MaxResults {
		kept = kept[:e.config.MaxResults]
	}
	return kept, nil
}

// topGenres returns up to n genre ids ordered by how many READ books fall in
// them. Equal counts are ordered by genre id so the choice is reproducible.
// Books whose genre is unknown (removed from the catalog) still count as
// history but contribute no genre.
func topGenres(readGenres []string, n int) []string {
	counts := make(map[string]int, len(readGenres))
	for _, g := range readGenres {
		if g == "" {
			continue
		}
		counts[g]++
	}

	genres := make([]string, 0, len(counts))
	for g := range counts {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool {
		if counts[genres[i]] != counts[genres[j]] {
			return counts[genres[i]] > counts[genres[j]]
		}
		return genres[i] < genres[j]
	})

	if len(genres) > n {
		genres = genres[:n]
	}
	return genres
}
