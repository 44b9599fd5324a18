// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package config

import (
	"time"

	"github.com/tomtom215/mentormatch/internal/auth"
	"github.com/tomtom215/mentormatch/internal/events"
	"github.com/tomtom215/mentormatch/internal/logging"
	"github.com/tomtom215/mentormatch/internal/mentorship"
	"github.com/tomtom215/mentormatch/internal/recommend"
	"github.com/tomtom215/mentormatch/internal/store"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Store     StoreConfig     `koanf:"store"`
	Events    EventsConfig    `koanf:"events"`
	Matching  MatchingConfig  `koanf:"matching"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development or production
}

// SecurityConfig holds authentication and request-limiting settings.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // jwt or none
	JWTSecret         string        `koanf:"jwt_secret"`
	JWTIssuer         string        `koanf:"jwt_issuer"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Backend     string        `koanf:"backend"` // memory or badger
	Path        string        `koanf:"path"`
	InMemory    bool          `koanf:"in_memory"`
	SyncWrites  bool          `koanf:"sync_writes"`
	Compression bool          `koanf:"compression"`
	GCInterval  time.Duration `koanf:"gc_interval"`
	GCRatio     float64       `koanf:"gc_ratio"`

	// SeedFile is an optional JSON file applied at startup.
	SeedFile string `koanf:"seed_file"`
}

// EventsConfig holds relationship event bus settings.
type EventsConfig struct {
	Backend       string        `koanf:"backend"` // none, gochannel or nats
	Topic         string        `koanf:"topic"`
	NATSURL       string        `koanf:"nats_url"`
	JetStream     bool          `koanf:"jetstream"`
	QueueGroup    string        `koanf:"queue_group"`
	MaxReconnects int           `koanf:"max_reconnects"`
	ReconnectWait time.Duration `koanf:"reconnect_wait"`
	AuditEnabled  bool          `koanf:"audit_enabled"`

	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`

	RouterRetryCount           int           `koanf:"router_retry_count"`
	RouterRetryInitialInterval time.Duration `koanf:"router_retry_initial_interval"`
	RouterCloseTimeout         time.Duration `koanf:"router_close_timeout"`
}

// MatchingConfig holds mentorship matching settings.
type MatchingConfig struct {
	DefaultLimit int             `koanf:"default_limit"`
	MaxLimit     int             `koanf:"max_limit"`
	Threshold    float64         `koanf:"threshold"`
	Weights      MatchingWeights `koanf:"weights"`
}

// MatchingWeights are the compatibility factor weights. They must sum to 1.0.
type MatchingWeights struct {
	Expertise     float64 `koanf:"expertise"`
	Experience    float64 `koanf:"experience"`
	Communication float64 `koanf:"communication"`
	Availability  float64 `koanf:"availability"`
	Cultural      float64 `koanf:"cultural"`
}

// RecommendConfig holds content recommendation settings. Per-type scoring
// tables are not exposed; they keep the engine defaults.
type RecommendConfig struct {
	MaxLimit                  int           `koanf:"max_limit"`
	HistoryWindow             time.Duration `koanf:"history_window"`
	PersonalizedExcludeWindow time.Duration `koanf:"personalized_exclude_window"`
	TrendingWindow            time.Duration `koanf:"trending_window"`
	TrendingThreshold         float64       `koanf:"trending_threshold"`
	TrendingDefaultLimit      int           `koanf:"trending_default_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// AuthConfig converts the security section for the auth package.
func (c *Config) AuthConfig() auth.Config {
	return auth.Config{
		Mode:      auth.Mode(c.Security.AuthMode),
		JWTSecret: c.Security.JWTSecret,
		Issuer:    c.Security.JWTIssuer,
		TokenTTL:  c.Security.TokenTTL,
	}
}

// StoreConfig converts the store section for the store package.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:     store.Backend(c.Store.Backend),
		Path:        c.Store.Path,
		InMemory:    c.Store.InMemory,
		SyncWrites:  c.Store.SyncWrites,
		Compression: c.Store.Compression,
		GCInterval:  c.Store.GCInterval,
		GCRatio:     c.Store.GCRatio,
	}
}

// EventsConfig converts the events section, starting from the package
// defaults for settings that are not exposed.
func (c *Config) EventsConfig() events.Config {
	cfg := events.DefaultConfig()
	cfg.Backend = events.Backend(c.Events.Backend)
	cfg.Topic = c.Events.Topic
	cfg.AuditEnabled = c.Events.AuditEnabled
	cfg.NATS.URL = c.Events.NATSURL
	cfg.NATS.JetStream = c.Events.JetStream
	cfg.NATS.QueueGroup = c.Events.QueueGroup
	cfg.NATS.MaxReconnects = c.Events.MaxReconnects
	cfg.NATS.ReconnectWait = c.Events.ReconnectWait
	cfg.Breaker.FailureThreshold = c.Events.BreakerFailureThreshold
	cfg.Breaker.Timeout = c.Events.BreakerTimeout
	cfg.Router.RetryMaxRetries = c.Events.RouterRetryCount
	cfg.Router.RetryInitialInterval = c.Events.RouterRetryInitialInterval
	cfg.Router.CloseTimeout = c.Events.RouterCloseTimeout
	return cfg
}

// MatchingConfig converts the matching section for the mentorship package.
func (c *Config) MatchingConfig() *mentorship.Config {
	return &mentorship.Config{
		Weights: mentorship.Weights{
			Expertise:     c.Matching.Weights.Expertise,
			Experience:    c.Matching.Weights.Experience,
			Communication: c.Matching.Weights.Communication,
			Availability:  c.Matching.Weights.Availability,
			Cultural:      c.Matching.Weights.Cultural,
		},
		Threshold:    c.Matching.Threshold,
		DefaultLimit: c.Matching.DefaultLimit,
		MaxLimit:     c.Matching.MaxLimit,
	}
}

// RecommendConfig converts the recommend section for the recommend package.
func (c *Config) RecommendConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.MaxLimit = c.Recommend.MaxLimit
	cfg.HistoryWindow = c.Recommend.HistoryWindow
	cfg.PersonalizedExcludeWindow = c.Recommend.PersonalizedExcludeWindow
	cfg.Trending.Window = c.Recommend.TrendingWindow
	cfg.Trending.Threshold = c.Recommend.TrendingThreshold
	cfg.Trending.DefaultLimit = c.Recommend.TrendingDefaultLimit
	return cfg
}

// LoggingConfig converts the logging section for the logging package.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
