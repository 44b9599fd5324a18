// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/mentormatch/internal/models"
)

func TestTransitionTable(t *testing.T) {
	t.Parallel()

	all := []models.RelationshipStatus{models.StatusPending, models.StatusActive, models.StatusPaused, models.StatusCompleted, models.StatusEnded}
	allowed := map[Action]map[models.RelationshipStatus]models.RelationshipStatus{
		ActionAccept:   {models.StatusPending: models.StatusActive},
		ActionDecline:  {models.StatusPending: models.StatusEnded},
		ActionPause:    {models.StatusActive: models.StatusPaused},
		ActionResume:   {models.StatusPaused: models.StatusActive},
		ActionComplete: {models.StatusActive: models.StatusCompleted, models.StatusPaused: models.StatusCompleted},
		ActionEnd:      {models.StatusActive: models.StatusEnded, models.StatusPaused: models.StatusEnded},
		ActionUpdate:   {models.StatusPending: models.StatusPending, models.StatusActive: models.StatusActive, models.StatusPaused: models.StatusPaused},
	}
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	for action, table := range allowed {
		for _, from := range all {
			rel := &models.Relationship{ID: "r", Status: from}
			next, err := Transition(rel, ActionRequest{Action: action}, now)
			to, ok := table[from]
			if !ok {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("%s from %s: expected ErrInvalidTransition, got %v", action, from, err)
				}
				continue
			}
			if err != nil {
				t.Errorf("%s from %s: unexpected error %v", action, from, err)
				continue
			}
			if next.Status != to {
				t.Errorf("%s from %s: got %s, want %s", action, from, next.Status, to)
			}
			if rel.Status != from {
				t.Errorf("%s mutated the input relationship", action)
			}
		}
	}
}

func TestTransitionTerminalStatesNeverReopen(t *testing.T) {
	t.Parallel()

	for _, from := range []models.RelationshipStatus{models.StatusCompleted, models.StatusEnded} {
		for action := range transitions {
			if _, err := Transition(&models.Relationship{Status: from}, ActionRequest{Action: action}, time.Now()); err == nil {
				t.Errorf("%s from terminal %s should fail", action, from)
			}
		}
	}
	if _, err := Transition(&models.Relationship{Status: models.StatusPending}, ActionRequest{Action: "archive"}, time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("unknown action should be rejected, got %v", err)
	}
}

func TestTransitionComplete(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rel := &models.Relationship{Status: models.StatusActive}
	outcome := &models.Outcome{MentorSatisfaction: 5, MenteeSatisfaction: 4, WisdomNotes: "Listen first"}

	next, err := Transition(rel, ActionRequest{Action: ActionComplete, Outcome: outcome}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Outcome == nil || next.Outcome.WisdomNotes != "Listen first" {
		t.Errorf("expected outcome to be recorded, got %+v", next.Outcome)
	}
	if next.EndedAt == nil || !next.EndedAt.Equal(now) {
		t.Errorf("expected EndedAt %v, got %v", now, next.EndedAt)
	}
	outcome.WisdomNotes = "mutated"
	if next.Outcome.WisdomNotes != "Listen first" {
		t.Error("outcome must be copied")
	}
}

func TestTransitionUpdateMergesStructure(t *testing.T) {
	t.Parallel()

	rel := &models.Relationship{
		Status:    models.StatusActive,
		Structure: models.Structure{MeetingFrequency: models.FrequencyWeekly, DurationMonths: 6, FocusAreas: []string{"go"}},
	}
	next, err := Transition(rel, ActionRequest{
		Action:    ActionUpdate,
		Structure: &models.Structure{DurationMonths: 9},
	}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Structure.DurationMonths != 9 || next.Structure.MeetingFrequency != models.FrequencyWeekly || len(next.Structure.FocusAreas) != 1 {
		t.Errorf("unexpected merged structure %+v", next.Structure)
	}
	if next.Status != models.StatusActive {
		t.Errorf("update must keep status, got %s", next.Status)
	}
}
