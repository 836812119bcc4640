// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package supervisor provides process supervision for BookWorm using suture v4.

# Overview

The supervisor tree groups long-running services into two layers:

	RootSupervisor ("bookworm")
	├── DataSupervisor ("data-layer")
	│   └── CatalogStatsService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. A failing poller in
the data layer does not stop the API layer.

# Logging

Supervisor events (restarts, backoff, panics) go to an slog.Logger through
sutureslog. Pass logging.NewSlogLogger() so they land in the zerolog stream:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(stats)
	tree.AddAPIService(httpSvc)

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Shutdown

Canceling the context passed to Serve stops every service. Services that do
not return within ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
