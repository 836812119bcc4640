// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package recommend

import "math"

// averageRating is the mean of approved review scores, or exactly 0 when
// there are none.
func averageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// userAverage is the mean of the reader's own ratings, or prior when the
// reader has rated nothing.
func userAverage(ratings []Rating, prior float64) float64 {
	if len(ratings) == 0 {
		return prior
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return float64(sum) / float64(len(ratings))
}

// ratingThreshold is the lowest candidate average the genre-affinity path keeps.
func (c *Config) ratingThreshold(userAvg float64) float64 {
	return math.Max(c.RatingFloor, userAvg-c.RatingTolerance)
}

// toResult projects a candidate onto the public result shape.
//
//nolint:gocritic // hugeParam: candidates are small and read once
func toResult(c CandidateBook) Result {
	return Result{
		ID:        c.ID,
		Title:     c.Title,
		Author:    c.Author,
		CoverURL:  c.CoverURL,
		Genre:     GenreRef{Name: c.GenreName},
		AvgRating: averageRating(c.ApprovedRatings),
		Count:     ShelfCount{UserBooks: c.ShelvedCount},
	}
}
