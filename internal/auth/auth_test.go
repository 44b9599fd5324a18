// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/logging"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(Config{Mode: ModeJWT, JWTSecret: testSecret, Issuer: "mentormatch", TokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestNewJWTManagerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTManager(Config{JWTSecret: "short"}); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	token, err := m.GenerateToken("mentee-1", "mentee")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.SubjectID() != "mentee-1" {
		t.Errorf("expected subject mentee-1, got %q", claims.SubjectID())
	}
	if claims.Role != "mentee" {
		t.Errorf("expected role mentee, got %q", claims.Role)
	}
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	expired := newTestManager(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken("mentee-1", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other, err := NewJWTManager(Config{JWTSecret: strings.Repeat("x", MinSecretLength), Issuer: "mentormatch"})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	foreignToken, err := other.GenerateToken("mentee-1", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	wrongIssuer, err := NewJWTManager(Config{JWTSecret: testSecret, Issuer: "elsewhere"})
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	wrongIssuerToken, err := wrongIssuer.GenerateToken("mentee-1", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "mentee-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expiredToken},
		{"wrong secret", foreignToken},
		{"wrong issuer", wrongIssuerToken},
		{"none algorithm", noneToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := m.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func captureSubject(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var got string
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SubjectFromContext(r.Context())
		if logging.SubjectIDFromContext(r.Context()) != got {
			t.Errorf("expected logging context to carry subject %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}), &got
}

func TestAuthenticatorJWT(t *testing.T) {
	t.Parallel()

	a, err := NewAuthenticator(Config{Mode: ModeJWT, JWTSecret: testSecret, Issuer: "mentormatch"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	token, err := a.jwt.GenerateToken("mentor-9", "mentor")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     string
	}{
		{"valid bearer", "Bearer " + token, http.StatusNoContent, "mentor-9"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next, got := captureSubject(t)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/trending", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			a.Require(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if *got != tt.wantID {
				t.Errorf("expected subject %q, got %q", tt.wantID, *got)
			}
			if tt.wantStatus == http.StatusUnauthorized && !strings.Contains(rec.Body.String(), `"UNAUTHORIZED"`) {
				t.Errorf("expected UNAUTHORIZED error body, got %s", rec.Body.String())
			}
		})
	}
}

func TestAuthenticatorNone(t *testing.T) {
	t.Parallel()

	a, err := NewAuthenticator(Config{Mode: ModeNone}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	if a.Mode() != ModeNone {
		t.Errorf("expected mode none, got %s", a.Mode())
	}

	next, got := captureSubject(t)
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(SubjectHeader, " mentee-3 ")
	rec := httptest.NewRecorder()
	a.Require(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || *got != "mentee-3" {
		t.Errorf("expected mentee-3 with 204, got %q with %d", *got, rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Require(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", rec.Code)
	}
}

func TestNewAuthenticatorUnknownMode(t *testing.T) {
	t.Parallel()

	if _, err := NewAuthenticator(Config{Mode: "oidc"}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
