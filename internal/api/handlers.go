// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package api

import (
	"context"
	"time"

	"github.com/tomtom215/bookworm/internal/dashboard"
	"github.com/tomtom215/bookworm/internal/recommend"
)

// DefaultHandlerTimeout bounds every data handler.
const DefaultHandlerTimeout = 10 * time.Second

// Recommender serves recommendation lists. *recommend.Engine implements it.
type Recommender interface {
	RecommendWithOutcome(ctx context.Context, userID string) ([]recommend.Result, recommend.Outcome, error)
	Stats() recommend.Stats
}

// DashboardLoader assembles dashboards. *dashboard.Loader implements it.
type DashboardLoader interface {
	Load(ctx context.Context, userID string) (*dashboard.Dashboard, error)
}

// HealthChecker reports whether the catalog store is reachable.
// *database.DB implements it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// CatalogSnapshot exposes the last catalog size observed by the stats poller.
type CatalogSnapshot interface {
	CatalogBooks() (books int, ok bool)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommendation list and engine stats
//   - handlers_dashboard.go: reader dashboard
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	recommender Recommender
	dashboard   DashboardLoader
	health      HealthChecker
	catalog     CatalogSnapshot
	version     string
	timeout     time.Duration
	startTime   time.Time
}

// HandlerDeps lists what NewHandler wires together. Catalog may be nil, in
// which case readiness reports no catalog size.
type HandlerDeps struct {
	Recommender Recommender
	Dashboard   DashboardLoader
	Health      HealthChecker
	Catalog     CatalogSnapshot
	Version     string
	Timeout     time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(deps HandlerDeps) *Handler {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = DefaultHandlerTimeout
	}
	return &Handler{
		recommender: deps.Recommender,
		dashboard:   deps.Dashboard,
		health:      deps.Health,
		catalog:     deps.Catalog,
		version:     deps.Version,
		timeout:     timeout,
		startTime:   time.Now(),
	}
}
