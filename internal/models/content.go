// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package models

import "time"

// ContentItem is a recommendable piece of community content.
type ContentItem struct {
	ID              string    `json:"id" validate:"required"`
	Title           string    `json:"title"`
	Kind            string    `json:"kind"`
	Source          string    `json:"source,omitempty"`
	Domain          string    `json:"domain,omitempty"`
	Tags            []string  `json:"tags,omitempty" validate:"omitempty,tags"`
	ComplexityLevel int       `json:"complexity_level" validate:"min=1,max=5"`
	QualityScore    float64   `json:"quality_score" validate:"min=0,max=1"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InteractionKind enumerates engagement signals.
type InteractionKind string

const (
	InteractionView     InteractionKind = "view"
	InteractionLike     InteractionKind = "like"
	InteractionShare    InteractionKind = "share"
	InteractionBookmark InteractionKind = "bookmark"
	InteractionComplete InteractionKind = "complete"
)

// Interaction records one engagement of a subject with a content item.
type Interaction struct {
	UserID          string          `json:"user_id" validate:"required"`
	ContentID       string          `json:"content_id" validate:"required"`
	Kind            InteractionKind `json:"kind" validate:"omitempty,oneof=view like share bookmark complete"`
	DurationSeconds int             `json:"duration_seconds" validate:"min=0"`
	Timestamp       time.Time       `json:"timestamp"`
}
