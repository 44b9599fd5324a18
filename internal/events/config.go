// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package events

import (
	"fmt"
	"time"
)

// Backend selects the message transport.
type Backend string

const (
	BackendNone      Backend = "none"
	BackendGoChannel Backend = "gochannel"
	BackendNATS      Backend = "nats"
)

// DefaultTopic carries every relationship event.
const DefaultTopic = "mentormatch.relationships"

// Config configures the event bus.
type Config struct {
	Backend Backend
	Topic   string

	// OutputBuffer is the gochannel per-subscriber buffer.
	OutputBuffer int64

	NATS    NATSConfig
	Breaker BreakerConfig
	Router  RouterConfig

	// AuditEnabled starts the audit consumer.
	AuditEnabled bool
}

// NATSConfig configures the nats backend.
type NATSConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration

	// JetStream enables persistent delivery; requires a stream for Topic.
	JetStream bool

	// QueueGroup load-balances the audit consumer across replicas.
	QueueGroup string
}

// BreakerConfig configures the publish circuit breaker.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// RouterConfig configures the consumer router.
type RouterConfig struct {
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64
}

// DefaultConfig returns an in-process bus with auditing on.
func DefaultConfig() Config {
	return Config{
		Backend:      BackendGoChannel,
		Topic:        DefaultTopic,
		OutputBuffer: 256,
		NATS: NATSConfig{
			URL:           "nats://127.0.0.1:4222",
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
			QueueGroup:    "mentormatch-audit",
		},
		Breaker: BreakerConfig{
			Name:             "events",
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		Router: RouterConfig{
			CloseTimeout:         10 * time.Second,
			RetryMaxRetries:      3,
			RetryInitialInterval: 100 * time.Millisecond,
			RetryMaxInterval:     5 * time.Second,
			RetryMultiplier:      2.0,
		},
		AuditEnabled: true,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendNone:
		return nil
	case BackendGoChannel:
	case BackendNATS:
		if c.NATS.URL == "" {
			return fmt.Errorf("events nats url is required for the nats backend")
		}
	default:
		return fmt.Errorf("unknown events backend %q", c.Backend)
	}
	if c.Topic == "" {
		return fmt.Errorf("events topic is required")
	}
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("events breaker failure_threshold must be positive")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("events breaker timeout must be positive")
	}
	return nil
}
