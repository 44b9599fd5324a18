// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/mentormatch/internal/logging"
	"github.com/tomtom215/mentormatch/internal/models"
)

// Metadata keys set on every message.
const (
	MetadataEventType      = "event_type"
	MetadataRelationshipID = "relationship_id"
	MetadataCorrelationID  = "correlation_id"
)

// RelationshipEvent is the payload of a lifecycle message.
type RelationshipEvent struct {
	EventID        string                    `json:"event_id"`
	EventType      string                    `json:"event_type"`
	OccurredAt     time.Time                 `json:"occurred_at"`
	CorrelationID  string                    `json:"correlation_id,omitempty"`
	RelationshipID string                    `json:"relationship_id"`
	MentorID       string                    `json:"mentor_id"`
	MenteeID       string                    `json:"mentee_id"`
	Status         models.RelationshipStatus `json:"status"`
	Relationship   *models.Relationship      `json:"relationship"`
}

// NewRelationshipEvent builds an event for rel. The correlation ID is taken
// from ctx, preferring the request ID.
func NewRelationshipEvent(ctx context.Context, eventType string, rel *models.Relationship, now time.Time) *RelationshipEvent {
	correlationID := logging.RequestIDFromContext(ctx)
	if correlationID == "" {
		correlationID = logging.CorrelationIDFromContext(ctx)
	}
	return &RelationshipEvent{
		EventID:        uuid.New().String(),
		EventType:      eventType,
		OccurredAt:     now.UTC(),
		CorrelationID:  correlationID,
		RelationshipID: rel.ID,
		MentorID:       rel.MentorID,
		MenteeID:       rel.MenteeID,
		Status:         rel.Status,
		Relationship:   rel.Clone(),
	}
}

// Encode serializes the event.
func (e *RelationshipEvent) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// DecodeRelationshipEvent parses a message payload.
func DecodeRelationshipEvent(data []byte) (*RelationshipEvent, error) {
	var e RelationshipEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if e.EventID == "" || e.EventType == "" {
		return nil, fmt.Errorf("event is missing id or type")
	}
	return &e, nil
}
