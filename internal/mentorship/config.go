// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"errors"
	"fmt"
)

// Config contains the tunables of the matching service.
type Config struct {
	// Weights are the compatibility factor weights. They must sum to 1.0.
	Weights Weights `json:"weights"`

	// Threshold is the minimum score a candidate needs to be returned.
	// Default: 0 (every scored candidate is admitted).
	Threshold float64 `json:"threshold"`

	// DefaultLimit is used when a request does not set a limit.
	// Default: 5.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps caller-supplied limits.
	// Default: 50.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the standard matching configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights:      DefaultWeights(),
		Threshold:    0,
		DefaultLimit: DefaultLimit,
		MaxLimit:     50,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in [0,1], got %f", c.Threshold)
	}
	if c.DefaultLimit <= 0 {
		return errors.New("default_limit must be positive")
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

// limit resolves a requested limit against the defaults.
func (c *Config) limit(requested int) int {
	switch {
	case requested <= 0:
		return c.DefaultLimit
	case requested > c.MaxLimit:
		return c.MaxLimit
	default:
		return requested
	}
}
