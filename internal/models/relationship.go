// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package models

import (
	"slices"
	"time"
)

// RelationshipStatus is the lifecycle state of a mentorship.
type RelationshipStatus string

const (
	StatusPending   RelationshipStatus = "pending"
	StatusActive    RelationshipStatus = "active"
	StatusPaused    RelationshipStatus = "paused"
	StatusCompleted RelationshipStatus = "completed"
	StatusEnded     RelationshipStatus = "ended"
)

// IsValid reports whether s is a known status.
func (s RelationshipStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusPaused, StatusCompleted, StatusEnded:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s RelationshipStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusEnded
}

// Meeting cadences.
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// Structure is the suggested shape of a mentorship.
type Structure struct {
	MeetingFrequency string   `json:"meeting_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	DurationMonths   int      `json:"duration_months" validate:"omitempty,min=1,max=24"`
	FocusAreas       []string `json:"focus_areas,omitempty" validate:"max=10"`
	Milestones       []string `json:"milestones,omitempty" validate:"max=10"`
}

// IsZero reports whether no structure fields are set.
func (s *Structure) IsZero() bool {
	return s == nil || (s.MeetingFrequency == "" && s.DurationMonths == 0 &&
		len(s.FocusAreas) == 0 && len(s.Milestones) == 0)
}

// Outcome is recorded when a relationship completes.
type Outcome struct {
	MentorSatisfaction int      `json:"mentor_satisfaction,omitempty" validate:"omitempty,min=1,max=5"`
	MenteeSatisfaction int      `json:"mentee_satisfaction,omitempty" validate:"omitempty,min=1,max=5"`
	WisdomNotes        string   `json:"wisdom_notes,omitempty" validate:"max=4000"`
	MilestonesAchieved []string `json:"milestones_achieved,omitempty"`
}

// Relationship pairs a mentor with a mentee.
type Relationship struct {
	ID         string             `json:"id"`
	MentorID   string             `json:"mentor_id"`
	MenteeID   string             `json:"mentee_id"`
	Status     RelationshipStatus `json:"status"`
	Structure  Structure          `json:"structure"`
	Outcome    *Outcome           `json:"outcome,omitempty"`
	MatchScore float64            `json:"match_score"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	StartedAt  *time.Time         `json:"started_at,omitempty"`
	EndedAt    *time.Time         `json:"ended_at,omitempty"`
}

// HasParty reports whether subjectID is the mentor or the mentee.
func (r *Relationship) HasParty(subjectID string) bool {
	return subjectID != "" && (r.MentorID == subjectID || r.MenteeID == subjectID)
}

// Clone returns a deep copy of r.
func (r *Relationship) Clone() *Relationship {
	c := *r
	c.Structure.FocusAreas = slices.Clone(r.Structure.FocusAreas)
	c.Structure.Milestones = slices.Clone(r.Structure.Milestones)
	if r.Outcome != nil {
		o := *r.Outcome
		o.MilestonesAchieved = slices.Clone(r.Outcome.MilestonesAchieved)
		c.Outcome = &o
	}
	if r.StartedAt != nil {
		t := *r.StartedAt
		c.StartedAt = &t
	}
	if r.EndedAt != nil {
		t := *r.EndedAt
		c.EndedAt = &t
	}
	return &c
}

// Blocks reports whether r prevents a new relationship for the same pair.
// Every status except ended blocks.
func (r *Relationship) Blocks() bool {
	return r.Status != StatusEnded
}

// RelationshipFilter selects relationships from a repository. Zero fields
// match everything.
type RelationshipFilter struct {
	// SubjectID matches relationships where the subject is mentor or mentee.
	SubjectID string
	// Statuses restricts the result to the given statuses.
	Statuses []RelationshipStatus
}

// Matches reports whether r satisfies the filter.
func (f RelationshipFilter) Matches(r *Relationship) bool {
	if f.SubjectID != "" && !r.HasParty(f.SubjectID) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if r.Status == s {
			return true
		}
	}
	return false
}

// NonEndedStatuses lists every status that blocks a duplicate relationship.
func NonEndedStatuses() []RelationshipStatus {
	return []RelationshipStatus{StatusPending, StatusActive, StatusPaused, StatusCompleted}
}
