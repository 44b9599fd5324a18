// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Type is a recommendation type.
type Type string

const (
	TypeRelated       Type = "related"
	TypeNextSteps     Type = "next_steps"
	TypePrerequisites Type = "prerequisites"
	TypeExamples      Type = "examples"
	TypeTrending      Type = "trending"
	TypePersonalized  Type = "personalized"
)

// ErrUnknownType is returned for an unsupported recommendation type.
var ErrUnknownType = errors.New("unknown recommendation type")

// Types lists every supported type.
func Types() []Type {
	return []Type{TypeRelated, TypeNextSteps, TypePrerequisites, TypeExamples, TypeTrending, TypePersonalized}
}

// IsValid reports whether t is a supported type.
func (t Type) IsValid() bool {
	switch t {
	case TypeRelated, TypeNextSteps, TypePrerequisites, TypeExamples, TypeTrending, TypePersonalized:
		return true
	}
	return false
}

// IsContentAnchored reports whether the subject of t is a content item.
func (t Type) IsContentAnchored() bool {
	switch t {
	case TypeRelated, TypeNextSteps, TypePrerequisites, TypeExamples:
		return true
	}
	return false
}

// DataProvider loads the records the engine scores.
// This is implemented by the store package.
type DataProvider interface {
	// GetContent returns one content item or an error wrapping models.ErrNotFound.
	GetContent(ctx context.Context, id string) (*models.ContentItem, error)

	// ListContent returns the full content pool.
	ListContent(ctx context.Context) ([]models.ContentItem, error)

	// GetSubject returns one user or an error wrapping models.ErrNotFound.
	GetSubject(ctx context.Context, id string) (*models.Subject, error)

	// ListInteractions returns interactions at or after since. An empty
	// userID returns interactions of every user.
	ListInteractions(ctx context.Context, userID string, since time.Time) ([]models.Interaction, error)
}

// Request describes a recommendation call.
type Request struct {
	// RequestID is used for tracing. Generated when empty.
	RequestID string

	// SubjectID is a content ID for content-anchored types and a user ID
	// for personalized. Trending ignores it.
	SubjectID string

	// Type selects the scoring rules.
	Type Type

	// Limit caps the number of results. Zero selects the type default.
	Limit int

	// ExcludeIDs are content IDs that must not be returned.
	ExcludeIDs []string
}

// Response contains ranked recommendations.
type Response struct {
	Items           []models.MatchResult `json:"items"`
	TotalCandidates int                  `json:"total_candidates"`
	Metadata        ResponseMetadata     `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string    `json:"request_id"`
	SubjectID string    `json:"subject_id,omitempty"`
	Type      Type      `json:"type"`
	Threshold float64   `json:"threshold"`
	LatencyMS int64     `json:"latency_ms"`
	Timestamp time.Time `json:"timestamp"`
}

// Metrics holds engine counters.
type Metrics struct {
	RequestCount   int64 `json:"request_count"`
	ErrorCount     int64 `json:"error_count"`
	EmptyResponses int64 `json:"empty_responses"`
}
