// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/metrics"
)

// auditHistory bounds the events kept for inspection.
const auditHistory = 100

// Auditor consumes relationship events, logs them and keeps the most recent
// ones in memory. Serve builds a fresh Watermill router on every call so the
// supervisor can restart it.
type Auditor struct {
	subscriber message.Subscriber
	topic      string
	config     RouterConfig
	logger     zerolog.Logger

	mu     sync.RWMutex
	recent []RelationshipEvent
	count  int64

	readyOnce sync.Once
	ready     chan struct{}
}

// NewAuditor creates an auditor reading the bus topic.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAuditor(bus *Bus, logger zerolog.Logger) *Auditor {
	return &Auditor{
		subscriber: bus.Subscriber(),
		topic:      bus.Topic(),
		config:     bus.config.Router,
		logger:     logger.With().Str("component", "events-audit").Logger(),
		ready:      make(chan struct{}),
	}
}

// Serve runs the consumer until ctx is canceled.
func (a *Auditor) Serve(ctx context.Context) error {
	wmLogger := NewWatermillLogger(a.logger)
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: a.config.CloseTimeout}, wmLogger)
	if err != nil {
		return fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      a.config.RetryMaxRetries,
		InitialInterval: a.config.RetryInitialInterval,
		MaxInterval:     a.config.RetryMaxInterval,
		Multiplier:      a.config.RetryMultiplier,
		Logger:          wmLogger,
	}
	router.AddMiddleware(retry.Middleware)
	router.AddConsumerHandler("relationship-audit", a.topic, a.subscriber, a.Handle)

	go func() {
		select {
		case <-router.Running():
			a.readyOnce.Do(func() { close(a.ready) })
		case <-ctx.Done():
		}
	}()

	a.logger.Info().Str("topic", a.topic).Msg("audit consumer starting")
	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("audit router: %w", err)
	}
	return ctx.Err()
}

// Handle processes one message. Undecodable payloads are logged and acked.
func (a *Auditor) Handle(msg *message.Message) error {
	event, err := DecodeRelationshipEvent(msg.Payload)
	if err != nil {
		a.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("dropping malformed event")
		return nil
	}

	a.logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("relationship_id", event.RelationshipID).
		Str("mentor_id", event.MentorID).
		Str("mentee_id", event.MenteeID).
		Str("status", string(event.Status)).
		Str("correlation_id", event.CorrelationID).
		Msg("relationship event")
	metrics.RecordEventConsumed(event.EventType)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.count++
	a.recent = append(a.recent, *event)
	if len(a.recent) > auditHistory {
		a.recent = a.recent[len(a.recent)-auditHistory:]
	}
	return nil
}

// Ready is closed once the first router run is consuming.
func (a *Auditor) Ready() <-chan struct{} {
	return a.ready
}

// Recent returns the retained events, oldest first.
func (a *Auditor) Recent() []RelationshipEvent {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]RelationshipEvent, len(a.recent))
	copy(out, a.recent)
	return out
}

// Count returns the number of events handled.
func (a *Auditor) Count() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.count
}

// String names the service for the supervisor.
func (a *Auditor) String() string {
	return "events-audit"
}
