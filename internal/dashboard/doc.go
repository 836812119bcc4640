// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package dashboard assembles the reader's home page in one call.

A Loader reads shelf counts, the book currently being read, the reader's
favourite genre, their latest reviews and a fresh recommendation list. The
five reads run concurrently; the first failure cancels the others and fails
the whole load, so callers never render a half-populated dashboard.

Usage:

	loader := dashboard.NewLoader(db, engine, logger)
	d, err := loader.Load(ctx, userID)
*/
package dashboard
