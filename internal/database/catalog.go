// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/bookworm/internal/metrics"
	"github.com/tomtom215/bookworm/internal/models"
	"github.com/tomtom215/bookworm/internal/recommend"
	"github.com/tomtom215/bookworm/internal/validation"
)

var _ recommend.Catalog = (*DB)(nil)

// candidateSelect projects a book with its genre name and how many readers
// shelved it. Approved ratings are attached by a second query.
const candidateSelect = `SELECT b.id, b.title, b.author, COALESCE(b.cover_url, ''), b.genre_id,
	COALESCE(g.name, ''), COALESCE(sc.shelved, 0)
FROM books b
LEFT JOIN genres g ON g.id = b.genre_id
LEFT JOIN (SELECT book_id, COUNT(*) AS shelved FROM user_books GROUP BY book_id) sc ON sc.book_id = b.id`

// ShelvedBooks returns every shelf entry of userID with the book's genre.
// Entries whose book no longer exists are still returned so they stay excluded.
func (db *DB) ShelvedBooks(ctx context.Context, userID string) ([]recommend.ShelvedBook, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT ub.user_id, ub.book_id, ub.shelf, COALESCE(b.genre_id, '')
		FROM user_books ub
		LEFT JOIN books b ON b.id = ub.book_id
		WHERE ub.user_id = ?
		ORDER BY ub.book_id`, userID)
	if err != nil {
		metrics.RecordDBQuery("shelved_books", time.Since(start), err)
		return nil, fmt.Errorf("query shelved books: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var shelved []recommend.ShelvedBook
	for rows.Next() {
		var sb recommend.ShelvedBook
		if err := rows.Scan(&sb.UserID, &sb.BookID, &sb.Shelf, &sb.GenreID); err != nil {
			return nil, fmt.Errorf("scan shelved book: %w", err)
		}
		shelved = append(shelved, sb)
	}
	err = rows.Err()
	metrics.RecordDBQuery("shelved_books", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate shelved books: %w", err)
	}
	return shelved, nil
}

// UserRatings returns every review score userID authored, whatever its
// moderation status.
func (db *DB) UserRatings(ctx context.Context, userID string) ([]recommend.Rating, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, `
		SELECT user_id, book_id, rating
		FROM reviews
		WHERE user_id = ?
		ORDER BY created_at, id`, userID)
	if err != nil {
		metrics.RecordDBQuery("user_ratings", time.Since(start), err)
		return nil, fmt.Errorf("query user ratings: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var ratings []recommend.Rating
	for rows.Next() {
		var r recommend.Rating
		if err := rows.Scan(&r.UserID, &r.BookID, &r.Value); err != nil {
			return nil, fmt.Errorf("scan user rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	err = rows.Err()
	metrics.RecordDBQuery("user_ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate user ratings: %w", err)
	}
	return ratings, nil
}

// CandidatesByGenre returns up to q.Limit books in q.GenreIDs that are not in
// q.ExcludeIDs, newest first.
func (db *DB) CandidatesByGenre(ctx context.Context, q recommend.CandidateQuery) ([]recommend.CandidateBook, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}
	if len(q.GenreIDs) == 0 {
		return []recommend.CandidateBook{}, nil
	}

	qb := newQueryBuilder(candidateSelect).
		whereIn("b.genre_id", q.GenreIDs).
		whereNotIn("b.id", q.ExcludeIDs).
		order("b.created_at DESC, b.id").
		page(q.Limit, 0)
	return db.queryCandidates(ctx, "candidates_by_genre", qb)
}

// MostShelved returns up to q.Limit books ordered by how many readers
// shelved them.
func (db *DB) MostShelved(ctx context.Context, q recommend.CandidateQuery) ([]recommend.CandidateBook, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	qb := newQueryBuilder(candidateSelect).
		whereNotIn("b.id", q.ExcludeIDs).
		order("COALESCE(sc.shelved, 0) DESC, b.id").
		page(q.Limit, 0)
	return db.queryCandidates(ctx, "most_shelved", qb)
}

// SampleBooks returns up to q.Limit books starting at q.Offset in id order.
func (db *DB) SampleBooks(ctx context.Context, q recommend.CandidateQuery) ([]recommend.CandidateBook, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	qb := newQueryBuilder(candidateSelect).
		whereNotIn("b.id", q.ExcludeIDs).
		order("b.id").
		page(q.Limit, q.Offset)
	return db.queryCandidates(ctx, "sample_books", qb)
}

// CountBooks returns the number of books in the catalog.
func (db *DB) CountBooks(ctx context.Context) (int, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	var count int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	metrics.RecordDBQuery("count_books", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

// validateQuery rejects malformed parameters before any SQL is built.
func validateQuery(q recommend.CandidateQuery) error {
	if verr := validation.ValidateStruct(&q); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, verr.Error())
	}
	return nil
}

// queryCandidates runs a candidate query and attaches approved ratings.
func (db *DB) queryCandidates(ctx context.Context, operation string, qb *queryBuilder) ([]recommend.CandidateBook, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	query, args := qb.build()

	start := time.Now()
	books, err := db.scanCandidates(ctx, query, args)
	if err == nil {
		err = db.attachApprovedRatings(ctx, books)
	}
	metrics.RecordDBQuery(operation, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return books, nil
}

func (db *DB) scanCandidates(ctx context.Context, query string, args []interface{}) ([]recommend.CandidateBook, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer closeWithLog(rows, "rows")

	books := make([]recommend.CandidateBook, 0)
	for rows.Next() {
		var b recommend.CandidateBook
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CoverURL, &b.GenreID, &b.GenreName, &b.ShelvedCount); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return books, nil
}

// attachApprovedRatings fills ApprovedRatings for books in one query.
func (db *DB) attachApprovedRatings(ctx context.Context, books []recommend.CandidateBook) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]string, len(books))
	index := make(map[string]int, len(books))
	for i := range books {
		ids[i] = books[i].ID
		index[books[i].ID] = i
		books[i].ApprovedRatings = []int{}
	}

	placeholders, args := buildInClause(ids)
	args = append([]interface{}{models.ReviewApproved}, args...)

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT book_id, rating
		FROM reviews
		WHERE status = ? AND book_id IN (%s)
		ORDER BY book_id, created_at, id`, placeholders), args...)
	if err != nil {
		return fmt.Errorf("query approved ratings: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var (
			bookID string
			rating int
		)
		if err := rows.Scan(&bookID, &rating); err != nil {
			return fmt.Errorf("scan approved rating: %w", err)
		}
		if i, ok := index[bookID]; ok {
			books[i].ApprovedRatings = append(books[i].ApprovedRatings, rating)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate approved ratings: %w", err)
	}
	return nil
}
