// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/logging"
	"github.com/tomtom215/mentormatch/internal/models"
)

// Mode selects how requests are authenticated.
type Mode string

const (
	ModeJWT  Mode = "jwt"
	ModeNone Mode = "none"
)

// SubjectHeader carries the subject ID in ModeNone.
const SubjectHeader = "X-Subject-ID"

// DefaultTokenTTL is used when Config.TokenTTL is unset.
const DefaultTokenTTL = 24 * time.Hour

// Config configures authentication.
type Config struct {
	Mode      Mode
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

type contextKey string

const (
	subjectContextKey contextKey = "subject"
	claimsContextKey  contextKey = "claims"
)

// ContextWithSubject stores the requesting subject ID.
func ContextWithSubject(ctx context.Context, subjectID string) context.Context {
	ctx = context.WithValue(ctx, subjectContextKey, subjectID)
	return logging.ContextWithSubjectID(ctx, subjectID)
}

// SubjectFromContext returns the requesting subject ID.
func SubjectFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectContextKey).(string)
	return id, ok && id != ""
}

// ClaimsFromContext returns the validated token claims in ModeJWT.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsContextKey).(*Claims)
	return c, ok
}

// Authenticator is HTTP middleware that resolves the requesting subject.
type Authenticator struct {
	mode   Mode
	jwt    *JWTManager
	logger zerolog.Logger
}

// NewAuthenticator creates the middleware for cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAuthenticator(cfg Config, logger zerolog.Logger) (*Authenticator, error) {
	a := &Authenticator{
		mode:   cfg.Mode,
		logger: logger.With().Str("component", "auth").Logger(),
	}
	switch cfg.Mode {
	case ModeJWT:
		m, err := NewJWTManager(cfg)
		if err != nil {
			return nil, err
		}
		a.jwt = m
	case ModeNone:
		a.logger.Warn().Msg("authentication disabled; trusting " + SubjectHeader)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
	return a, nil
}

// Mode returns the configured mode.
func (a *Authenticator) Mode() Mode {
	return a.mode
}

// Require rejects requests without a resolvable subject with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := a.resolve(r)
		if err != nil {
			a.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
			writeUnauthorized(w, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) resolve(r *http.Request) (context.Context, error) {
	ctx := r.Context()
	if a.mode == ModeNone {
		subjectID := strings.TrimSpace(r.Header.Get(SubjectHeader))
		if subjectID == "" {
			return nil, fmt.Errorf("%s header is required", SubjectHeader)
		}
		return ContextWithSubject(ctx, subjectID), nil
	}

	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("bearer token is required")
	}
	claims, err := a.jwt.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		return nil, ErrInvalidToken
	}
	ctx = context.WithValue(ctx, claimsContextKey, claims)
	return ContextWithSubject(ctx, claims.Subject), nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    &models.APIError{Code: "UNAUTHORIZED", Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("failed to encode unauthorized response")
	}
}
