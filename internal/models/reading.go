// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package models

import (
	"time"
)

// Review moderation states.
const (
	ReviewPending  = "PENDING"
	ReviewApproved = "APPROVED"
	ReviewRejected = "REJECTED"
)

// ShelfStats counts a reader's shelves. TotalBooks is every shelved book, so
// zero marks a first-time reader.
type ShelfStats struct {
	BooksRead        int `json:"booksRead"`
	WantToRead       int `json:"wantToRead"`
	CurrentlyReading int `json:"currentlyReading"`
	TotalBooks       int `json:"totalBooks"`
}

// CurrentReading is the reader's most recently updated in-progress book.
type CurrentReading struct {
	BookID     string    `json:"bookId"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	CoverURL   string    `json:"coverUrl,omitempty"`
	GenreName  string    `json:"genreName"`
	TotalPages int       `json:"totalPages,omitempty"`
	Progress   int       `json:"progress"`
	Percent    int       `json:"percent"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProgressPercent converts pages read into a 0..100 percentage. Books with
// unknown length report 0.
func ProgressPercent(progress, totalPages int) int {
	if totalPages <= 0 || progress <= 0 {
		return 0
	}
	if progress >= totalPages {
		return 100
	}
	return progress * 100 / totalPages
}

// BookRef is the slice of a book shown next to a review.
type BookRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	CoverURL string `json:"coverUrl,omitempty"`
}

// ReviewSummary is one of the reader's own reviews, any moderation status.
type ReviewSummary struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Book      BookRef   `json:"book"`
}
