// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

// Package store persists subjects, content, interactions and relationships.
//
// Two backends implement Store: an in-memory map store for development and
// tests, and a BadgerDB store for durable single-node deployments. Both
// enforce the one non-ended relationship per (mentor, mentee) pair rule
// atomically and report it as models.ErrConflict.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/mentorship"
	"github.com/tomtom215/mentormatch/internal/metrics"
	"github.com/tomtom215/mentormatch/internal/recommend"
)

// Backend selects a storage implementation.
type Backend string

const (
	// BackendMemory keeps everything in process memory (default, not persistent).
	BackendMemory Backend = "memory"

	// BackendBadger persists to a BadgerDB directory.
	BackendBadger Backend = "badger"
)

// Store is the full data layer used by the service and the engine.
type Store interface {
	mentorship.Repository
	recommend.DataProvider
	Writer

	// Ping reports whether the store can serve requests.
	Ping(ctx context.Context) error

	Close() error
}

// Config configures the store.
type Config struct {
	Backend Backend

	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory runs BadgerDB without touching disk.
	InMemory bool

	SyncWrites  bool
	Compression bool

	// GCInterval is how often value log GC runs. Zero disables it.
	GCInterval time.Duration

	// GCRatio is the discard ratio passed to RunValueLogGC.
	GCRatio float64
}

// DefaultConfig returns an in-memory configuration.
func DefaultConfig() Config {
	return Config{
		Backend:    BackendMemory,
		Path:       "/data/mentormatch",
		GCInterval: 10 * time.Minute,
		GCRatio:    0.5,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendBadger:
		if c.Path == "" && !c.InMemory {
			return fmt.Errorf("store path is required for the badger backend")
		}
		if c.GCRatio <= 0 || c.GCRatio >= 1 {
			return fmt.Errorf("gc ratio must be in (0,1), got %f", c.GCRatio)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	return nil
}

// Open creates the store selected by cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With().Str("component", "store").Str("backend", string(cfg.Backend)).Logger()

	if cfg.Backend == BackendBadger {
		s, err := OpenBadger(cfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("badger store opened")
		return s, nil
	}

	logger.Info().Msg("memory store ready")
	return NewMemoryStore(), nil
}

// observe records the duration of a store call. Use as
// defer observe(backend, "op", time.Now()).
func observe(backend Backend, operation string, start time.Time) {
	metrics.RecordStoreOperation(string(backend), operation, time.Since(start))
}
