// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package models defines the data structures shared between the catalog store,
the dashboard loader and the HTTP layer.

  - APIResponse, APIError, Metadata: the standard response envelope
  - HealthStatus: readiness probe payload
  - ShelfStats, CurrentReading, ReviewSummary, BookRef: dashboard rows

Review status values are exported as constants so SQL and Go code agree on
spelling. Shelf states and recommendation results are owned by the recommend
package.
*/
package models
