// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package config

import (
	"errors"
	"fmt"

	"github.com/tomtom215/mentormatch/internal/auth"
)

// Validate checks every section. Component sections are validated by the
// component's own Validate after conversion.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}

	storeCfg := c.StoreConfig()
	if err := storeCfg.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	eventsCfg := c.EventsConfig()
	if err := eventsCfg.Validate(); err != nil {
		return fmt.Errorf("events: %w", err)
	}
	if err := c.MatchingConfig().Validate(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}
	if err := c.RecommendConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return errors.New("server read and write timeouts must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server environment must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch auth.Mode(c.Security.AuthMode) {
	case auth.ModeJWT:
		if len(c.Security.JWTSecret) < auth.MinSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when auth_mode is jwt", auth.MinSecretLength)
		}
	case auth.ModeNone:
		if c.IsProduction() {
			return errors.New("auth_mode none is not allowed in production")
		}
	default:
		return fmt.Errorf("auth_mode must be jwt or none, got %q", c.Security.AuthMode)
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs <= 0 || c.Security.RateLimitWindow <= 0) {
		return errors.New("rate limit requests and window must be positive")
	}
	return nil
}
