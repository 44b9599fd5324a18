// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/mentormatch/internal/logging"
	"github.com/tomtom215/mentormatch/internal/metrics"
	"github.com/tomtom215/mentormatch/internal/models"
)

// ErrBusClosed is returned when publishing after Close.
var ErrBusClosed = errors.New("event bus is closed")

// Bus publishes relationship events and hands out the matching subscriber.
// It implements mentorship.EventPublisher.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	breaker    *gobreaker.CircuitBreaker[interface{}]
	config     Config
	logger     zerolog.Logger
	wmLogger   watermill.LoggerAdapter
	now        func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewBus creates the bus selected by cfg.Backend.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(cfg Config, logger zerolog.Logger) (*Bus, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With().Str("component", "events").Str("backend", string(cfg.Backend)).Logger()
	wmLogger := NewWatermillLogger(logger)

	var (
		pub message.Publisher
		sub message.Subscriber
		err error
	)
	switch cfg.Backend {
	case BackendGoChannel:
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.OutputBuffer}, wmLogger)
		pub, sub = ch, ch
	case BackendNATS:
		pub, sub, err = newNATSPubSub(cfg, wmLogger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("events backend %q has no bus", cfg.Backend)
	}

	return newBus(pub, sub, cfg, logger, wmLogger), nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newBus(pub message.Publisher, sub message.Subscriber, cfg Config, logger zerolog.Logger, wmLogger watermill.LoggerAdapter) *Bus {
	return &Bus{
		publisher:  pub,
		subscriber: sub,
		breaker:    NewCircuitBreaker(cfg.Breaker, logger),
		config:     cfg,
		logger:     logger,
		wmLogger:   wmLogger,
		now:        time.Now,
	}
}

// NewWatermillLogger adapts a zerolog logger to Watermill through slog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWatermillLogger(logger zerolog.Logger) watermill.LoggerAdapter {
	return watermill.NewSlogLogger(slog.New(logging.NewSlogHandler(logger)))
}

func newNATSPubSub(cfg Config, logger watermill.LoggerAdapter) (message.Publisher, message.Subscriber, error) {
	natsOpts := []natsgo.Option{
		natsgo.Name("mentormatch"),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.NATS.MaxReconnects),
		natsgo.ReconnectWait(cfg.NATS.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
		}),
	}

	jetStream := wmNats.JetStreamConfig{
		Disabled:      !cfg.NATS.JetStream,
		AutoProvision: cfg.NATS.JetStream,
		TrackMsgId:    cfg.NATS.JetStream,
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.NATS.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   jetStream,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.NATS.URL,
		QueueGroupPrefix: cfg.NATS.QueueGroup,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     cfg.Router.CloseTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        jetStream,
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	return pub, sub, nil
}

// PublishRelationship publishes a lifecycle event for rel.
func (b *Bus) PublishRelationship(ctx context.Context, eventType string, rel *models.Relationship) error {
	event := NewRelationshipEvent(ctx, eventType, rel, b.now())
	err := b.Publish(ctx, event)
	metrics.RecordEventPublished(eventType, err)
	return err
}

// Publish sends event through the circuit breaker.
func (b *Bus) Publish(_ context.Context, event *RelationshipEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	data, err := event.Encode()
	if err != nil {
		return err
	}
	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set(MetadataEventType, event.EventType)
	msg.Metadata.Set(MetadataRelationshipID, event.RelationshipID)
	msg.Metadata.Set(MetadataCorrelationID, event.CorrelationID)
	if b.config.Backend == BackendNATS && b.config.NATS.JetStream {
		msg.Metadata.Set(natsgo.MsgIdHdr, event.EventID)
	}

	_, err = b.breaker.Execute(func() (interface{}, error) {
		return nil, b.publisher.Publish(b.config.Topic, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType, err)
	}
	return nil
}

// Subscriber returns the subscriber reading the bus topic.
func (b *Bus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Topic returns the topic events are published to.
func (b *Bus) Topic() string {
	return b.config.Topic
}

// BreakerState returns the breaker state name.
func (b *Bus) BreakerState() string {
	return b.breaker.State().String()
}

// Close shuts down the publisher and subscriber.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if b.subscriber != nil && any(b.subscriber) != any(b.publisher) {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	return errors.Join(errs...)
}
