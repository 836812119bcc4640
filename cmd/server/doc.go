// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package main is the entry point for the BookWorm recommendation service.

The server answers GET /api/v1/recommendations with up to 18 books for the
authenticated reader, and GET /api/v1/dashboard with the reader's shelf
summary plus the same recommendations.

# Startup Order

 1. Configuration: defaults, optional config.yaml, environment (koanf v2)
 2. Logging: zerolog configured from LOG_LEVEL / LOG_FORMAT / LOG_CALLER
 3. Database: DuckDB catalog store, schema creation, optional demo seed
 4. Recommendation engine over the catalog, behind the circuit breaker
 5. Dashboard loader
 6. Authentication: JWT manager and middleware
 7. Supervisor tree: catalog stats poller and HTTP server

# Configuration

Commonly used variables:

	DUCKDB_PATH=/data/bookworm.duckdb  catalog file, ":memory:" for a throwaway store
	SEED_MOCK_DATA=true                load the demo catalog on startup
	HTTP_PORT=3000                     listen port
	AUTH_MODE=jwt                      jwt or none
	JWT_SECRET=...                     32+ characters, required for jwt
	DEV_USER_ID=...                    reader served when AUTH_MODE=none
	RECOMMEND_SEED=42                  fixed RNG seed, 0 seeds from the clock
	BREAKER_ENABLED=true               catalog circuit breaker

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains for
up to 10 seconds, the poller stops, then the database is closed.

# Example

	export SEED_MOCK_DATA=true DUCKDB_PATH=:memory:
	export JWT_SECRET=$(openssl rand -base64 48)
	go run ./cmd/server &
	TOKEN=$(go run ./cmd/issue-token -user <user-id>)
	curl -H "Authorization: Bearer $TOKEN" localhost:3000/api/v1/recommendations
*/
package main
