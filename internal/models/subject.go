// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package models

import "time"

// Role is the part a subject plays in mentorship.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
	RoleBoth   Role = "both"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleMentor, RoleMentee, RoleBoth:
		return true
	}
	return false
}

// CanMentor reports whether a subject with this role may act as a mentor.
func (r Role) CanMentor() bool { return r == RoleMentor || r == RoleBoth }

// CanBeMentored reports whether a subject with this role may act as a mentee.
func (r Role) CanBeMentored() bool { return r == RoleMentee || r == RoleBoth }

// ExperienceLevel is an ordered skill tier.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// Ordinal maps the level to 0, 1 or 2. Unknown levels are treated as beginner.
func (e ExperienceLevel) Ordinal() int {
	switch e {
	case ExperienceIntermediate:
		return 1
	case ExperienceAdvanced:
		return 2
	default:
		return 0
	}
}

// IsValid reports whether e is one of the known levels.
func (e ExperienceLevel) IsValid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// CommunicationMixed is the style that adapts to either partner.
const CommunicationMixed = "mixed"

// Subject is a community member.
type Subject struct {
	ID                     string          `json:"id" validate:"required"`
	Name                   string          `json:"name,omitempty"`
	Role                   Role            `json:"role" validate:"required,oneof=mentor mentee both"`
	Interests              []string        `json:"interests,omitempty" validate:"omitempty,tags"`
	Expertise              []string        `json:"expertise,omitempty" validate:"omitempty,tags"`
	Goals                  []string        `json:"goals,omitempty" validate:"omitempty,tags"`
	ExperienceLevel        ExperienceLevel `json:"experience_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	PreferredComplexity    int             `json:"preferred_complexity,omitempty" validate:"omitempty,min=1,max=5"`
	FocusDomain            string          `json:"focus_domain,omitempty"`
	EngagementScore        float64         `json:"engagement_score" validate:"min=0,max=1"`
	EngagementLevel        int             `json:"engagement_level,omitempty" validate:"omitempty,min=1,max=5"`
	MaxMentees             int             `json:"max_mentees,omitempty" validate:"omitempty,min=1,max=4"`
	CommunicationStyle     string          `json:"communication_style,omitempty"`
	CulturalConsiderations []string        `json:"cultural_considerations,omitempty"`
	PriorMentorships       int             `json:"prior_mentorships,omitempty" validate:"min=0"`
	CommitmentLevel        string          `json:"commitment_level,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	LastActiveAt           time.Time       `json:"last_active_at"`
}
