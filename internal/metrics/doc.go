// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package metrics provides Prometheus collectors for the recommendation service.

All collectors are registered on the default registry through promauto and are
exposed at /metrics by the API router.

# Available Metrics

Catalog store:
  - bookworm_db_query_duration_seconds (histogram), labels: operation
  - bookworm_db_query_errors_total (counter), labels: operation, error_type
  - bookworm_catalog_books (gauge), refreshed by the catalog poller

HTTP:
  - bookworm_api_requests_total (counter), labels: method, endpoint, status_code
  - bookworm_api_request_duration_seconds (histogram), labels: method, endpoint
  - bookworm_api_active_requests (gauge)
  - bookworm_api_rate_limit_hits_total (counter), labels: scope

Recommendation engine:
  - bookworm_recommend_requests_total (counter), labels: strategy
  - bookworm_recommend_duration_seconds (histogram)
  - bookworm_recommend_results (histogram)

Circuit breaker:
  - bookworm_circuit_breaker_state (gauge, 0=closed 1=half-open 2=open)
  - bookworm_circuit_breaker_requests_total (counter), labels: name, result
  - bookworm_circuit_breaker_consecutive_failures (gauge)
  - bookworm_circuit_breaker_state_transitions_total (counter)

# Usage

	start := time.Now()
	rows, err := conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("shelved_books", time.Since(start), err)

Error labels are classified into a small fixed set so that raw driver
messages never become label values.
*/
package metrics
