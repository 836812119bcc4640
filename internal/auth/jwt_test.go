// BookWorm - Book Cataloguing and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookworm

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/bookworm/internal/config"
)

const testSecret = "this_is_a_very_long_secret_key_for_testing_purposes_12345"

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      testSecret,
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

func TestNewJWTManager(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SecurityConfig
		wantErr bool
	}{
		{
			name:    "valid secret",
			cfg:     &config.SecurityConfig{JWTSecret: testSecret, SessionTimeout: 24 * time.Hour},
			wantErr: false,
		},
		{
			name:    "empty secret",
			cfg:     &config.SecurityConfig{JWTSecret: "", SessionTimeout: 24 * time.Hour},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, err := NewJWTManager(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewJWTManager() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewJWTManager() unexpected error = %v", err)
			}
			if manager == nil {
				t.Error("NewJWTManager() returned nil manager")
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := newTestJWTManager(t)

	tests := []struct {
		name   string
		userID string
		role   string
	}{
		{"reader", "6f1c1b3e-0000-4000-8000-000000000001", "USER"},
		{"admin", "6f1c1b3e-0000-4000-8000-000000000002", "ADMIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := manager.GenerateToken(tt.userID, tt.role)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}

			claims, err := manager.ValidateToken(token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID() != tt.userID {
				t.Errorf("UserID() = %q, want %q", claims.UserID(), tt.userID)
			}
			if claims.Role != tt.role {
				t.Errorf("Role = %q, want %q", claims.Role, tt.role)
			}
			if claims.Issuer != Issuer {
				t.Errorf("Issuer = %q, want %q", claims.Issuer, Issuer)
			}
			if claims.ID == "" {
				t.Error("jti is empty")
			}
		})
	}
}

func TestGenerateToken_UniqueIDs(t *testing.T) {
	manager := newTestJWTManager(t)

	a, err := manager.GenerateToken("u1", "USER")
	if err != nil {
		t.Fatal(err)
	}
	b, err := manager.GenerateToken("u1", "USER")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two tokens for the same user are identical")
	}
}

func TestGenerateToken_EmptyUser(t *testing.T) {
	manager := newTestJWTManager(t)

	if _, err := manager.GenerateToken("", "USER"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	manager := newTestJWTManager(t)
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, err := manager.GenerateToken("u1", "USER")
	if err != nil {
		t.Fatal(err)
	}

	manager.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredCredentials) {
		t.Errorf("err = %v, want ErrExpiredCredentials", err)
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	manager := newTestJWTManager(t)

	other, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      strings.Repeat("x", 40),
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := other.GenerateToken("u1", "USER")
	if err != nil {
		t.Fatal(err)
	}

	noSubject := signClaims(t, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	wrongIssuer := signClaims(t, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:  Issuer,
		Subject: "u1",
	}}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", foreign},
		{"missing subject", noSubject},
		{"wrong issuer", wrongIssuer},
		{"alg none", noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func signClaims(t *testing.T, claims *Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}
