// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package services provides suture.Service wrappers for BookWorm components.

Each wrapper implements suture's Serve(ctx) error and fmt.Stringer, so the
supervisor can restart it and name it in events.

# Available Services

HTTP Server (HTTPServerService):
  - Runs ListenAndServe in a goroutine
  - Shuts down gracefully when the supervisor context is canceled
  - Treats http.ErrServerClosed as a clean exit

Catalog Stats (CatalogStatsService):
  - Polls CountBooks on an interval and sets bookworm_catalog_books
  - Implements CatalogBooks() for the readiness probe
  - Keeps the last good value when a poll fails

# Usage

	stats := services.NewCatalogStatsService(db, cfg.Database.StatsInterval, logging.Logger())
	tree.AddDataService(stats)

	server := &http.Server{Addr: addr, Handler: router.SetupChi()}
	tree.AddAPIService(services.NewHTTPServerService(server, addr, 10*time.Second, logging.Logger()))
*/
package services
