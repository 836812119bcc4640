// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package recommend

import (
	"context"
	"time"
)

// Shelf states, spelled as stored in user_books.shelf.
const (
	ShelfWantToRead       = "WANT_TO_READ"
	ShelfCurrentlyReading = "CURRENTLY_READING"
	ShelfRead             = "READ"
)

// ShelvedBook is one reader's relationship to one book.
type ShelvedBook struct {
	UserID  string
	BookID  string
	Shelf   string
	GenreID string
}

// Rating is a score the reader gave a book, in [1,5]. The reader's own
// ratings count regardless of moderation status.
type Rating struct {
	UserID string
	BookID string
	Value  int
}

// CandidateBook is a book that may be recommended, along with the approved
// review scores used to compute its average.
type CandidateBook struct {
	ID              string
	Title           string
	Author          string
	CoverURL        string
	GenreID         string
	GenreName       string
	ApprovedRatings []int
	ShelvedCount    int
}

// Result is a recommendation as returned to clients. It carries the derived
// average only, never the individual review scores.
type Result struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CoverURL  string     `json:"coverUrl"`
	Genre     GenreRef   `json:"genre"`
	AvgRating float64    `json:"avgRating"`
	Count     ShelfCount `json:"_count"`
}

// GenreRef names the genre of a result.
type GenreRef struct {
	Name string `json:"name"`
}

// ShelfCount is how many readers have the book on any shelf.
type ShelfCount struct {
	UserBooks int `json:"userBooks"`
}

// CandidateQuery parameterizes every candidate read. The catalog validates it
// before building SQL.
//
// GenreIDs is ignored by MostShelved and SampleBooks. Offset is only used by
// SampleBooks.
type CandidateQuery struct {
	ExcludeIDs []string `validate:"dive,notblank"`
	GenreIDs   []string `validate:"dive,notblank"`
	Limit      int      `validate:"min=1,max=100"`
	Offset     int      `validate:"min=0"`
}

// Catalog is the read-only data access the engine depends on. The DuckDB
// store implements it; tests use an in-memory fake.
type Catalog interface {
	// ShelvedBooks returns every shelf entry of the user, any shelf state.
	ShelvedBooks(ctx context.Context, userID string) ([]ShelvedBook, error)

	// UserRatings returns every rating the user has authored.
	UserRatings(ctx context.Context, userID string) ([]Rating, error)

	// CandidatesByGenre returns up to q.Limit books in q.GenreIDs not in q.ExcludeIDs.
	CandidatesByGenre(ctx context.Context, q CandidateQuery) ([]CandidateBook, error)

	// MostShelved returns up to q.Limit books ordered by shelvedCount descending.
	MostShelved(ctx context.Context, q CandidateQuery) ([]CandidateBook, error)

	// CountBooks returns the number of books in the catalog.
	CountBooks(ctx context.Context) (int, error)

	// SampleBooks returns up to q.Limit books starting at q.Offset in a
	// stable catalog order, excluding q.ExcludeIDs.
	SampleBooks(ctx context.Context, q CandidateQuery) ([]CandidateBook, error)
}

// Strategy identifies which path produced a result set.
type Strategy string

const (
	// StrategyPersonalized means the genre-affinity path alone filled the list.
	StrategyPersonalized Strategy = "personalized"

	// StrategyFallback means the reader had too little history and only the
	// popular and discovery sets were used.
	StrategyFallback Strategy = "fallback"

	// StrategyBlended means the genre-affinity path ran but came up short and
	// was merged with the popular and discovery sets.
	StrategyBlended Strategy = "blended"
)

// Outcome describes how a single Recommend call was served.
type Outcome struct {
	Strategy     Strategy
	ReadBooks    int
	Excluded     int
	Personalized int
	Returned     int
	Duration     time.Duration
}

// Stats is a snapshot of engine counters since start.
type Stats struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	Personalized int64 `json:"personalized"`
	Fallback     int64 `json:"fallback"`
	Blended      int64 `json:"blended"`
}
