// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

// Package events publishes relationship lifecycle events and consumes them
// for auditing.
//
// Events travel over Watermill. The gochannel backend keeps them in process;
// the nats backend ships them to a NATS server through watermill-nats, with
// JetStream optional. Publishing goes through a gobreaker circuit breaker so
// a dead broker fails fast instead of stalling request handlers.
//
// Event types:
//
//	relationship.created
//	relationship.accept, relationship.decline, relationship.pause, ...
//	relationship.deleted
//
// Every message carries its event type, relationship ID and correlation ID
// in metadata; the payload is a JSON RelationshipEvent.
package events
