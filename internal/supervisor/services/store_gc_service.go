// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/mentormatch/internal/store"
)

// DefaultGCInterval is used when a non-positive interval is given.
const DefaultGCInterval = 10 * time.Minute

// GarbageCollector reclaims space in a durable store.
// Implemented by *store.BadgerStore.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService periodically runs value log GC on the badger store.
// A failed run is logged and retried on the next tick; the service only
// returns when the context is canceled or the store has been closed.
type StoreGCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStoreGCService creates the GC loop.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStoreGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &StoreGCService{
		gc:       gc,
		interval: interval,
		logger:   logger.With().Str("service", "store-gc").Logger(),
		name:     "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("store GC service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("store GC service stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := s.gc.RunGC(); err != nil {
				if errors.Is(err, store.ErrClosed) {
					// Nothing left to collect; tell suture not to restart us.
					s.logger.Warn().Msg("store closed, GC service exiting")
					return suture.ErrDoNotRestart
				}
				s.logger.Warn().Err(err).Msg("value log GC failed")
				continue
			}
			s.logger.Debug().Msg("value log GC completed")
		}
	}
}

// String implements fmt.Stringer.
func (s *StoreGCService) String() string {
	return s.name
}
