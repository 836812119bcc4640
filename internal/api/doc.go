// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package api provides the HTTP layer of the BookWorm recommendation service.

Routes:

	GET /api/v1/health/live            liveness, always 200 while the process runs
	GET /api/v1/health/ready           readiness, 503 until the catalog answers
	GET /api/v1/recommendations        bare JSON array of up to 18 books (auth)
	GET /api/v1/recommendations/stats  engine counters since start (auth)
	GET /api/v1/dashboard              the reader's dashboard (auth)
	GET /metrics                       Prometheus exposition

Every endpoint except the recommendation list answers with the
models.APIResponse envelope. The list is served as a bare array so existing
clients can iterate it directly; errors on that route still use the
envelope.

Middleware Stack (outermost first):

  - RequestID: X-Request-ID propagation and logging context
  - RealIP, Recoverer: chi middleware
  - CORS: go-chi/cors
  - per-IP rate limit: go-chi/httprate, on /api/v1
  - PrometheusMetrics: request counters by chi route pattern
  - Authenticate and per-user rate limit: internal/auth

Handlers depend on small interfaces (Recommender, DashboardLoader,
HealthChecker) so tests drive them with fakes and httptest.
*/
package api
