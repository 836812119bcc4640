// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/bookworm/internal/metrics"
	"github.com/tomtom215/bookworm/internal/models"
	"github.com/tomtom215/bookworm/internal/recommend"
)

// ShelfStats counts the reader's books per shelf.
func (db *DB) ShelfStats(ctx context.Context, userID string) (models.ShelfStats, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	var stats models.ShelfStats
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE shelf = ?),
			COUNT(*) FILTER (WHERE shelf = ?),
			COUNT(*) FILTER (WHERE shelf = ?),
			COUNT(*)
		FROM user_books
		WHERE user_id = ?`,
		recommend.ShelfRead, recommend.ShelfWantToRead, recommend.ShelfCurrentlyReading, userID,
	).Scan(&stats.BooksRead, &stats.WantToRead, &stats.CurrentlyReading, &stats.TotalBooks)
	metrics.RecordDBQuery("shelf_stats", time.Since(start), err)
	if err != nil {
		return models.ShelfStats{}, fmt.Errorf("query shelf stats: %w", err)
	}
	return stats, nil
}

// CurrentReading returns the most recently updated CURRENTLY_READING entry,
// or nil when the reader has none.
func (db *DB) CurrentReading(ctx context.Context, userID string) (*models.CurrentReading, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	var (
		cr         models.CurrentReading
		coverURL   sql.NullString
		genreName  sql.NullString
		totalPages sql.NullInt64
		updatedAt  sql.NullTime
	)

	start := time.Now()
	err := db.conn.QueryRowContext(ctx, `
		SELECT b.id, b.title, b.author, b.cover_url, g.name, b.total_pages, ub.progress, ub.updated_at
		FROM user_books ub
		JOIN books b ON b.id = ub.book_id
		LEFT JOIN genres g ON g.id = b.genre_id
		WHERE ub.user_id = ? AND ub.shelf = ?
		ORDER BY ub.updated_at DESC NULLS LAST, ub.book_id
		LIMIT 1`,
		userID, recommend.ShelfCurrentlyReading,
	).Scan(&cr.BookID, &cr.Title, &cr.Author, &coverURL, &genreName, &totalPages, &cr.Progress, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("current_reading", time.Since(start), nil)
		return nil, nil
	}
	metrics.RecordDBQuery("current_reading", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query current reading: %w", err)
	}

	cr.CoverURL = coverURL.String
	cr.GenreName = genreName.String
	cr.TotalPages = int(totalPages.Int64)
	cr.UpdatedAt = updatedAt.Time
	cr.Percent = models.ProgressPercent(cr.Progress, cr.TotalPages)
	return &cr, nil
}

// TopGenreName returns the genre the reader has finished most books in,
// ties by name ascending. Empty when nothing is on the READ shelf.
func (db *DB) TopGenreName(ctx context.Context, userID string) (string, error) {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	var name string
	err := db.conn.QueryRowContext(ctx, `
		SELECT g.name
		FROM user_books ub
		JOIN books b ON b.id = ub.book_id
		JOIN genres g ON g.id = b.genre_id
		WHERE ub.user_id = ? AND ub.shelf = ?
		GROUP BY g.name
		ORDER BY COUNT(*) DESC, g.name
		LIMIT 1`,
		userID, recommend.ShelfRead,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("top_genre", time.Since(start), nil)
		return "", nil
	}
	metrics.RecordDBQuery("top_genre", time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("query top genre: %w", err)
	}
	return name, nil
}

// RecentReviews returns the reader's latest reviews, newest first.
func (db *DB) RecentReviews(ctx context.Context, userID string, limit int) ([]models.ReviewSummary, error) {
	if limit <= 0 || limit > maxReviewLimit {
		return nil, fmt.Errorf("%w: review limit %d outside 1..%d", ErrInvalidQuery, limit, maxReviewLimit)
	}

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT r.id, r.rating, r.content, r.status, r.created_at, b.id, b.title, b.cover_url
		FROM reviews r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC, r.id
		LIMIT %d`, limit), userID)
	if err != nil {
		metrics.RecordDBQuery("recent_reviews", time.Since(start), err)
		return nil, fmt.Errorf("query recent reviews: %w", err)
	}
	defer closeWithLog(rows, "rows")

	reviews := make([]models.ReviewSummary, 0, limit)
	for rows.Next() {
		var (
			rs        models.ReviewSummary
			content   sql.NullString
			createdAt sql.NullTime
			coverURL  sql.NullString
		)
		if err := rows.Scan(&rs.ID, &rs.Rating, &content, &rs.Status, &createdAt, &rs.Book.ID, &rs.Book.Title, &coverURL); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rs.Content = content.String
		rs.CreatedAt = createdAt.Time
		rs.Book.CoverURL = coverURL.String
		reviews = append(reviews, rs)
	}
	err = rows.Err()
	metrics.RecordDBQuery("recent_reviews", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

// maxReviewLimit caps RecentReviews.
const maxReviewLimit = 50
