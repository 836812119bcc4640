// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// fakeCatalog is an in-memory Catalog. Books keep insertion order, which is
// also the order SampleBooks pages through.
type fakeCatalog struct {
	mu      sync.Mutex
	books   []CandidateBook
	shelves map[string][]ShelvedBook
	ratings map[string][]Rating

	shelvedErr error
	ratingsErr error
	genreErr   error
	popularErr error
	countErr   error
	sampleErr  error

	genreCalls   int
	popularCalls int
	sampleCalls  int
	lastGenreQ   CandidateQuery
	lastSampleQ  CandidateQuery
	lastPopularQ CandidateQuery
	leakExcluded bool // return excluded books anyway, to test the engine's own guard
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		shelves: make(map[string][]ShelvedBook),
		ratings: make(map[string][]Rating),
	}
}

func (f *fakeCatalog) addBook(id, genre string, shelvedCount int, ratings ...int) {
	f.books = append(f.books, CandidateBook{
		ID:              id,
		Title:           "Title " + id,
		Author:          "Author " + id,
		CoverURL:        "/covers/" + id + ".jpg",
		GenreID:         genre,
		GenreName:       "Genre " + genre,
		ApprovedRatings: ratings,
		ShelvedCount:    shelvedCount,
	})
}

func (f *fakeCatalog) shelve(userID, bookID, shelf string) {
	genre := ""
	for _, b := range f.books {
		if b.ID == bookID {
			genre = b.GenreID
		}
	}
	f.shelves[userID] = append(f.shelves[userID], ShelvedBook{UserID: userID, BookID: bookID, Shelf: shelf, GenreID: genre})
}

func (f *fakeCatalog) rate(userID, bookID string, value int) {
	f.ratings[userID] = append(f.ratings[userID], Rating{UserID: userID, BookID: bookID, Value: value})
}

func (f *fakeCatalog) ShelvedBooks(_ context.Context, userID string) ([]ShelvedBook, error) {
	if f.shelvedErr != nil {
		return nil, f.shelvedErr
	}
	return f.shelves[userID], nil
}

func (f *fakeCatalog) UserRatings(_ context.Context, userID string) ([]Rating, error) {
	if f.ratingsErr != nil {
		return nil, f.ratingsErr
	}
	return f.ratings[userID], nil
}

func (f *fakeCatalog) allowed(q CandidateQuery, b CandidateBook) bool {
	if f.leakExcluded {
		return true
	}
	for _, id := range q.ExcludeIDs {
		if id == b.ID {
			return false
		}
	}
	return true
}

func (f *fakeCatalog) CandidatesByGenre(_ context.Context, q CandidateQuery) ([]CandidateBook, error) {
	f.mu.Lock()
	f.genreCalls++
	f.lastGenreQ = q
	f.mu.Unlock()
	if f.genreErr != nil {
		return nil, f.genreErr
	}
	if q.Limit < 1 {
		return nil, fmt.Errorf("invalid limit %d", q.Limit)
	}

	inGenre := make(map[string]bool, len(q.GenreIDs))
	for _, g := range q.GenreIDs {
		inGenre[g] = true
	}
	var out []CandidateBook
	for _, b := range f.books {
		if inGenre[b.GenreID] && f.allowed(q, b) {
			out = append(out, b)
		}
		if len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) MostShelved(_ context.Context, q CandidateQuery) ([]CandidateBook, error) {
	f.mu.Lock()
	f.popularCalls++
	f.lastPopularQ = q
	f.mu.Unlock()
	if f.popularErr != nil {
		return nil, f.popularErr
	}

	var out []CandidateBook
	for _, b := range f.books {
		if f.allowed(q, b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ShelvedCount > out[j].ShelvedCount })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeCatalog) CountBooks(_ context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.books), nil
}

func (f *fakeCatalog) SampleBooks(_ context.Context, q CandidateQuery) ([]CandidateBook, error) {
	f.mu.Lock()
	f.sampleCalls++
	f.lastSampleQ = q
	f.mu.Unlock()
	if f.sampleErr != nil {
		return nil, f.sampleErr
	}
	if q.Offset < 0 {
		return nil, fmt.Errorf("invalid offset %d", q.Offset)
	}

	var eligible []CandidateBook
	for _, b := range f.books {
		if f.allowed(q, b) {
			eligible = append(eligible, b)
		}
	}
	if q.Offset >= len(eligible) {
		return nil, nil
	}
	eligible = eligible[q.Offset:]
	if len(eligible) > q.Limit {
		eligible = eligible[:q.Limit]
	}
	return eligible, nil
}
