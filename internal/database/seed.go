// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/bookworm/internal/logging"
	"github.com/tomtom215/bookworm/internal/models"
	"github.com/tomtom215/bookworm/internal/recommend"
)

// seedNamespace derives stable ids for demo rows so reseeding is a no-op.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tomtom215/bookworm/seed"))

// SeedID returns the id the demo seed assigns to kind/name, for example
// SeedID("user", "user1@bookworm.com").
func SeedID(kind, name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+name)).String()
}

type seedBook struct {
	title      string
	author     string
	totalPages int
	genre      string
	coverID    string
}

type seedShelf struct {
	email    string
	title    string
	shelf    string
	progress int
}

type seedReview struct {
	email   string
	title   string
	rating  int
	content string
	status  string
}

var (
	seedGenres = []string{
		"Fiction", "Mystery", "Science Fiction", "Fantasy",
		"Romance", "Thriller", "Horror", "Non-Fiction",
	}

	seedUsers = []struct {
		name  string
		email string
		role  string
	}{
		{"Admin User", "admin@bookworm.com", "ADMIN"},
		{"John Doe", "user1@bookworm.com", "USER"},
		{"Jane Smith", "user2@bookworm.com", "USER"},
	}

	seedBooks = []seedBook{
		{"The Great Gatsby", "F. Scott Fitzgerald", 180, "Fiction", "7883843"},
		{"Dune", "Frank Herbert", 412, "Science Fiction", "8479662"},
		{"Murder on the Orient Express", "Agatha Christie", 256, "Mystery", "8231512"},
		{"The Hobbit", "J.R.R. Tolkien", 310, "Fantasy", "8506154"},
		{"Pride and Prejudice", "Jane Austen", 432, "Romance", "8235657"},
		{"1984", "George Orwell", 328, "Science Fiction", "12640516"},
		{"The Shining", "Stephen King", 447, "Horror", "8231938"},
		{"Sapiens", "Yuval Noah Harari", 443, "Non-Fiction", "12711054"},
		{"Gone Girl", "Gillian Flynn", 415, "Thriller", "7989100"},
		{"The Name of the Wind", "Patrick Rothfuss", 662, "Fantasy", "8166425"},
		{"The Da Vinci Code", "Dan Brown", 454, "Mystery", "12647417"},
		{"The Notebook", "Nicholas Sparks", 214, "Romance", "8231856"},
		{"To Kill a Mockingbird", "Harper Lee", 281, "Fiction", "8225266"},
		{"Neuromancer", "William Gibson", 271, "Science Fiction", "12644460"},
		{"It", "Stephen King", 1138, "Horror", ""},
		{"Atomic Habits", "James Clear", 320, "Non-Fiction", ""},
		{"The Silent Patient", "Alex Michaelides", 336, "Thriller", ""},
		{"Circe", "Madeline Miller", 393, "Fantasy", ""},
		{"The Alchemist", "Paulo Coelho", 163, "Fiction", ""},
		{"Dracula", "Bram Stoker", 418, "Horror", ""},
		{"The Martian", "Andy Weir", 369, "Science Fiction", ""},
		{"Educated", "Tara Westover", 334, "Non-Fiction", ""},
		{"The Girl on the Train", "Paula Hawkins", 326, "Thriller", ""},
		{"A Game of Thrones", "George R.R. Martin", 694, "Fantasy", ""},
		{"Me Before You", "Jojo Moyes", 369, "Romance", ""},
		{"The Big Sleep", "Raymond Chandler", 231, "Mystery", ""},
		{"Frankenstein", "Mary Shelley", 280, "Horror", ""},
		{"Project Hail Mary", "Andy Weir", 476, "Science Fiction", ""},
		{"Becoming", "Michelle Obama", 448, "Non-Fiction", ""},
		{"The Seven Husbands of Evelyn Hugo", "Taylor Jenkins Reid", 389, "Fiction", ""},
	}

	// Progress is pages read.
	seedShelves = []seedShelf{
		{"user1@bookworm.com", "The Great Gatsby", recommend.ShelfRead, 180},
		{"user1@bookworm.com", "Dune", recommend.ShelfCurrentlyReading, 185},
		{"user1@bookworm.com", "Murder on the Orient Express", recommend.ShelfWantToRead, 0},
		{"user2@bookworm.com", "The Hobbit", recommend.ShelfRead, 310},
		{"user2@bookworm.com", "Pride and Prejudice", recommend.ShelfCurrentlyReading, 259},
		{"user2@bookworm.com", "The Name of the Wind", recommend.ShelfRead, 662},
		{"user2@bookworm.com", "Circe", recommend.ShelfRead, 393},
		{"user2@bookworm.com", "The Notebook", recommend.ShelfRead, 214},
	}

	seedReviews = []seedReview{
		{"user1@bookworm.com", "The Great Gatsby", 5, "A timeless classic! Fitzgerald's prose is absolutely stunning.", models.ReviewApproved},
		{"user2@bookworm.com", "The Hobbit", 5, "An amazing adventure from start to finish.", models.ReviewApproved},
		{"user1@bookworm.com", "Dune", 4, "Complex and engaging science fiction.", models.ReviewPending},
		{"user2@bookworm.com", "The Name of the Wind", 4, "Beautiful prose, slow middle.", models.ReviewApproved},
		{"user2@bookworm.com", "Circe", 5, "Myth retold with real heart.", models.ReviewApproved},
		{"admin@bookworm.com", "A Game of Thrones", 4, "Sprawling and addictive.", models.ReviewApproved},
		{"admin@bookworm.com", "The Martian", 5, "Funny and tense in equal measure.", models.ReviewApproved},
		{"admin@bookworm.com", "It", 2, "Far too long.", models.ReviewApproved},
	}
)

// SeedMockData inserts a small demo catalog with three users, their shelves
// and reviews. Rows use stable ids and conflicting inserts are ignored, so
// running it again changes nothing.
func (db *DB) SeedMockData(ctx context.Context) error {
	logging.Info().Msg("Seeding database with demo catalog...")

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	base := time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)

	for _, name := range seedGenres {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO genres (id, name) VALUES (?, ?)`,
			SeedID("genre", name), name); err != nil {
			return fmt.Errorf("seed genre %s: %w", name, err)
		}
	}

	for _, u := range seedUsers {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (id, name, email, role) VALUES (?, ?, ?, ?)`,
			SeedID("user", u.email), u.name, u.email, u.role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	for i, b := range seedBooks {
		if err := insertSeedBook(ctx, tx, b, base.Add(time.Duration(i)*time.Hour)); err != nil {
			return err
		}
	}

	for i, s := range seedShelves {
		at := base.Add(time.Duration(24+i) * time.Hour)
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_books (user_id, book_id, shelf, progress, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			SeedID("user", s.email), SeedID("book", s.title), s.shelf, s.progress, at, at); err != nil {
			return fmt.Errorf("seed shelf %s/%s: %w", s.email, s.title, err)
		}
	}

	for i, r := range seedReviews {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO reviews (id, user_id, book_id, rating, content, status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			SeedID("review", r.email+"/"+r.title), SeedID("user", r.email), SeedID("book", r.title),
			r.rating, r.content, r.status, base.Add(time.Duration(48+i)*time.Hour)); err != nil {
			return fmt.Errorf("seed review %s/%s: %w", r.email, r.title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	logging.Info().
		Int("genres", len(seedGenres)).
		Int("users", len(seedUsers)).
		Int("books", len(seedBooks)).
		Int("shelves", len(seedShelves)).
		Int("reviews", len(seedReviews)).
		Msg("Demo catalog seeded")
	return nil
}

func insertSeedBook(ctx context.Context, tx *sql.Tx, b seedBook, createdAt time.Time) error {
	var cover sql.NullString
	if b.coverID != "" {
		cover = sql.NullString{String: "https://covers.openlibrary.org/b/id/" + b.coverID + "-L.jpg", Valid: true}
	}
	_, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO books (id, title, author, cover_url, total_pages, genre_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		SeedID("book", b.title), b.title, b.author, cover, b.totalPages, SeedID("genre", b.genre), createdAt)
	if err != nil {
		return fmt.Errorf("seed book %s: %w", b.title, err)
	}
	return nil
}
