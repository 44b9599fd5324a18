// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"slices"
	"time"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Action is a caller-driven relationship lifecycle step.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionDecline  Action = "decline"
	ActionPause    Action = "pause"
	ActionResume   Action = "resume"
	ActionComplete Action = "complete"
	ActionEnd      Action = "end"
	ActionUpdate   Action = "update"
)

// IsValid reports whether a is a known action.
func (a Action) IsValid() bool {
	_, ok := transitions[a]
	return ok
}

type transition struct {
	from []models.RelationshipStatus
	to   models.RelationshipStatus // empty keeps the current status
}

var transitions = map[Action]transition{
	ActionAccept:   {from: []models.RelationshipStatus{models.StatusPending}, to: models.StatusActive},
	ActionDecline:  {from: []models.RelationshipStatus{models.StatusPending}, to: models.StatusEnded},
	ActionPause:    {from: []models.RelationshipStatus{models.StatusActive}, to: models.StatusPaused},
	ActionResume:   {from: []models.RelationshipStatus{models.StatusPaused}, to: models.StatusActive},
	ActionComplete: {from: []models.RelationshipStatus{models.StatusActive, models.StatusPaused}, to: models.StatusCompleted},
	ActionEnd:      {from: []models.RelationshipStatus{models.StatusActive, models.StatusPaused}, to: models.StatusEnded},
	ActionUpdate:   {from: []models.RelationshipStatus{models.StatusPending, models.StatusActive, models.StatusPaused}},
}

// ActionRequest is an action plus its optional payload.
type ActionRequest struct {
	Action    Action            `json:"action" validate:"required,oneof=accept decline pause resume complete end update"`
	Structure *models.Structure `json:"structure,omitempty"`
	Outcome   *models.Outcome   `json:"outcome,omitempty"`
}

// Transition returns a copy of rel with req applied. rel is never modified.
// Completed and ended relationships accept no action.
func Transition(rel *models.Relationship, req ActionRequest, now time.Time) (*models.Relationship, error) {
	t, ok := transitions[req.Action]
	if !ok || !slices.Contains(t.from, rel.Status) {
		return nil, &TransitionError{Action: req.Action, From: rel.Status}
	}

	next := *rel
	next.UpdatedAt = now

	switch req.Action {
	case ActionAccept:
		next.StartedAt = &now
	case ActionResume:
		if next.StartedAt == nil {
			next.StartedAt = &now
		}
	case ActionDecline, ActionEnd:
		next.EndedAt = &now
	case ActionComplete:
		next.EndedAt = &now
		if req.Outcome != nil {
			o := *req.Outcome
			next.Outcome = &o
		} else {
			next.Outcome = &models.Outcome{}
		}
	case ActionUpdate:
		if req.Structure != nil {
			next.Structure = mergeStructure(rel.Structure, req.Structure)
		}
	}

	if t.to != "" {
		next.Status = t.to
	}
	return &next, nil
}

// mergeStructure overlays the non-zero fields of update on base.
func mergeStructure(base models.Structure, update *models.Structure) models.Structure {
	if update.MeetingFrequency != "" {
		base.MeetingFrequency = update.MeetingFrequency
	}
	if update.DurationMonths > 0 {
		base.DurationMonths = update.DurationMonths
	}
	if update.FocusAreas != nil {
		base.FocusAreas = models.NormalizeTags(update.FocusAreas)
	}
	if update.Milestones != nil {
		base.Milestones = append([]string(nil), update.Milestones...)
	}
	return base
}
