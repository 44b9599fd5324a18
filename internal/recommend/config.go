// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Weights are the factor weights of a scoring table. Content-anchored types
// read them as domain, tags, complexity and quality; personalized reads them
// as interests, focus, complexity preference and quality.
type Weights struct {
	Domain     float64 `json:"domain"`
	Tags       float64 `json:"tags"`
	Complexity float64 `json:"complexity"`
	Quality    float64 `json:"quality"`
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	return w.Domain + w.Tags + w.Complexity + w.Quality
}

// Table is the scoring table of one recommendation type.
type Table struct {
	Weights      Weights `json:"weights"`
	Threshold    float64 `json:"threshold"`
	DefaultLimit int     `json:"default_limit"`
}

// TrendingConfig tunes the trending accumulator.
type TrendingConfig struct {
	// Window is the trailing interaction window counted toward velocity.
	// Default: 7 days.
	Window time.Duration `json:"window"`

	// FreshWindow grants the full freshness boost. Default: 48h.
	FreshWindow time.Duration `json:"fresh_window"`

	// RecentWindow grants the half freshness boost. Default: 7 days.
	RecentWindow time.Duration `json:"recent_window"`

	// DepthSeconds is the average duration that earns the full depth score.
	// Default: 600.
	DepthSeconds int `json:"depth_seconds"`

	// Threshold is the admission threshold on the [0,2] scale. Default: 0.3.
	Threshold float64 `json:"threshold"`

	// DefaultLimit is used when a request sets no limit. Default: 10.
	DefaultLimit int `json:"default_limit"`
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Tables holds the scoring table of every non-trending type.
	Tables map[Type]Table `json:"tables"`

	// Trending configures the trending accumulator.
	Trending TrendingConfig `json:"trending"`

	// HistoryWindow bounds the interactions used to build a user context.
	// Default: 30 days.
	HistoryWindow time.Duration `json:"history_window"`

	// PersonalizedExcludeWindow hides content the user touched recently.
	// Default: 7 days.
	PersonalizedExcludeWindow time.Duration `json:"personalized_exclude_window"`

	// MaxLimit caps caller-supplied limits. Default: 50.
	MaxLimit int `json:"max_limit"`
}

// DefaultTables returns the standard scoring tables.
func DefaultTables() map[Type]Table {
	return map[Type]Table{
		TypeRelated: {
			Weights:      Weights{Domain: 0.30, Tags: 0.40, Complexity: 0.15, Quality: 0.15},
			Threshold:    0.30,
			DefaultLimit: 5,
		},
		TypeNextSteps: {
			Weights:      Weights{Domain: 0.25, Tags: 0.30, Complexity: 0.35, Quality: 0.10},
			Threshold:    0.35,
			DefaultLimit: 5,
		},
		TypePrerequisites: {
			Weights:      Weights{Domain: 0.25, Tags: 0.30, Complexity: 0.35, Quality: 0.10},
			Threshold:    0.35,
			DefaultLimit: 5,
		},
		TypeExamples: {
			Weights:      Weights{Domain: 0.30, Tags: 0.35, Complexity: 0.15, Quality: 0.20},
			Threshold:    0.30,
			DefaultLimit: 5,
		},
		TypePersonalized: {
			Weights:      Weights{Domain: 0.25, Tags: 0.40, Complexity: 0.20, Quality: 0.15},
			Threshold:    0.40,
			DefaultLimit: 10,
		},
	}
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Tables: DefaultTables(),
		Trending: TrendingConfig{
			Window:       7 * 24 * time.Hour,
			FreshWindow:  48 * time.Hour,
			RecentWindow: 7 * 24 * time.Hour,
			DepthSeconds: 600,
			Threshold:    0.30,
			DefaultLimit: 10,
		},
		HistoryWindow:             30 * 24 * time.Hour,
		PersonalizedExcludeWindow: 7 * 24 * time.Hour,
		MaxLimit:                  50,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	for _, t := range Types() {
		if t == TypeTrending {
			continue
		}
		table, ok := c.Tables[t]
		if !ok {
			return fmt.Errorf("missing scoring table for %s", t)
		}
		if math.Abs(table.Weights.Sum()-1.0) > 1e-6 {
			return fmt.Errorf("%s weights must sum to 1.0, got %f", t, table.Weights.Sum())
		}
		if table.Threshold < 0 || table.Threshold > 1 {
			return fmt.Errorf("%s threshold must be in [0,1], got %f", t, table.Threshold)
		}
		if table.DefaultLimit <= 0 {
			return fmt.Errorf("%s default_limit must be positive", t)
		}
	}
	if c.Trending.Window <= 0 || c.Trending.FreshWindow <= 0 || c.Trending.RecentWindow < c.Trending.FreshWindow {
		return fmt.Errorf("trending windows must be positive and recent_window >= fresh_window")
	}
	if c.Trending.DepthSeconds <= 0 {
		return fmt.Errorf("trending depth_seconds must be positive")
	}
	if c.Trending.Threshold < 0 || c.Trending.Threshold > MaxTrendingScore {
		return fmt.Errorf("trending threshold must be in [0,%v], got %f", MaxTrendingScore, c.Trending.Threshold)
	}
	if c.Trending.DefaultLimit <= 0 {
		return fmt.Errorf("trending default_limit must be positive")
	}
	if c.HistoryWindow <= 0 || c.PersonalizedExcludeWindow <= 0 {
		return fmt.Errorf("history and personalized exclude windows must be positive")
	}
	if c.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be positive")
	}
	return nil
}

// threshold returns the admission threshold for t.
func (c *Config) threshold(t Type) float64 {
	if t == TypeTrending {
		return c.Trending.Threshold
	}
	return c.Tables[t].Threshold
}

// limit resolves a requested limit for t.
func (c *Config) limit(t Type, requested int) int {
	def := c.Trending.DefaultLimit
	if t != TypeTrending {
		def = c.Tables[t].DefaultLimit
	}
	switch {
	case requested <= 0:
		requested = def
	case requested > c.MaxLimit:
		requested = c.MaxLimit
	}
	return requested
}
