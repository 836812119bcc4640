// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookworm/internal/config"
	"github.com/tomtom215/bookworm/internal/logging"
	"github.com/tomtom215/bookworm/internal/metrics"
	"github.com/tomtom215/bookworm/internal/models"
)

type contextKey string

// ClaimsContextKey holds the caller's *Claims on the request context.
const ClaimsContextKey contextKey = "claims"

const (
	modeJWT  = "jwt"
	modeNone = "none"
)

// limiterCleanupInterval is how often idle per-user limiters are dropped.
const limiterCleanupInterval = 5 * time.Minute

// Middleware provides authentication and per-user rate limiting.
type Middleware struct {
	jwtManager        *JWTManager
	authMode          string
	devUserID         string
	userLimiter       *RateLimiter
	rateLimitDisabled bool
}

// NewMiddleware creates the middleware from the security settings.
// jwtManager may be nil when AuthMode is "none".
func NewMiddleware(cfg *config.SecurityConfig, jwtManager *JWTManager) *Middleware {
	m := &Middleware{
		jwtManager:        jwtManager,
		authMode:          cfg.AuthMode,
		devUserID:         cfg.DevUserID,
		userLimiter:       NewRateLimiter(cfg.UserRateLimit, cfg.UserRateBurst),
		rateLimitDisabled: cfg.RateLimitDisabled,
	}

	if !m.rateLimitDisabled {
		go m.userLimiter.startCleanup(limiterCleanupInterval)
	}

	return m
}

// Stop releases the limiter cleanup goroutine.
func (m *Middleware) Stop() {
	m.userLimiter.Stop()
}

// Authenticate rejects requests without a valid bearer token with 401 and
// stores the caller's claims and user id on the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == modeNone {
			RecordAuth(modeNone, "success")
			claims := &Claims{Role: "USER"}
			claims.Subject = m.devUserID
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
			return
		}

		token, err := extractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			RecordAuth(modeJWT, "missing")
			writeUnauthorized(w, "Authentication required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
			if errors.Is(err, ErrExpiredCredentials) {
				RecordAuth(modeJWT, "expired")
				writeUnauthorized(w, "Token expired")
				return
			}
			RecordAuth(modeJWT, "invalid")
			writeUnauthorized(w, "Invalid token")
			return
		}

		RecordAuth(modeJWT, "success")
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RateLimitUser applies the per-user token bucket. It must run after
// Authenticate.
func (m *Middleware) RateLimitUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.rateLimitDisabled {
			next.ServeHTTP(w, r)
			return
		}

		userID := UserID(r.Context())
		if !m.userLimiter.Allow(userID) {
			metrics.RecordRateLimitHit("user")
			logging.Ctx(r.Context()).Warn().Msg("Per-user rate limit exceeded")
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken returns the token from an "Authorization: Bearer" value.
func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrNoCredentials
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrNoCredentials
	}

	return strings.TrimSpace(parts[1]), nil
}

func withClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsContextKey, claims)
	return logging.ContextWithUserID(ctx, claims.Subject)
}

// GetClaims returns the authenticated caller's claims, or nil.
func GetClaims(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(ClaimsContextKey).(*Claims); ok {
		return claims
	}
	return nil
}

// UserID returns the authenticated caller's user id, or "".
func UserID(ctx context.Context) string {
	if claims := GetClaims(ctx); claims != nil {
		return claims.Subject
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="bookworm"`)
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
