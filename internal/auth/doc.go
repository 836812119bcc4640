// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

/*
Package auth authenticates API callers and limits how often each reader may
ask for recommendations.

Key Components:

  - JWTManager: HS256 token issuing and validation; the subject claim is the
    reader's user id
  - Middleware: chi-compatible handlers for authentication and per-user
    rate limiting
  - RateLimiter: token bucket per key with periodic cleanup of idle keys

Authentication Modes (AUTH_MODE):

  - jwt (default): requests carry "Authorization: Bearer <token>"; anything
    else is answered with 401 and the UNAUTHORIZED error envelope
  - none: development only; every request is served as DEV_USER_ID

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(&cfg.Security, jwtManager)
	defer mw.Stop()

	r.Group(func(r chi.Router) {
	    r.Use(mw.Authenticate)
	    r.With(mw.RateLimitUser).Get("/api/v1/recommendations", h.Recommendations)
	})

Inside a handler the caller is available as:

	userID := auth.UserID(r.Context())

Tokens for local testing are minted by cmd/issue-token.
*/
package auth
