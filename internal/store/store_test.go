// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/models"
)

var baseTime = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

// forEachBackend runs fn against a fresh store of every backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		fn(t, NewMemoryStore())
	})
	t.Run("badger", func(t *testing.T) {
		t.Parallel()
		s, err := OpenBadger(Config{Backend: BackendBadger, InMemory: true, GCRatio: 0.5}, zerolog.Nop())
		if err != nil {
			t.Fatalf("OpenBadger() error = %v", err)
		}
		t.Cleanup(func() { s.Close() })
		fn(t, s)
	})
}

func newRelationship(id, mentorID, menteeID string, status models.RelationshipStatus, created time.Time) *models.Relationship {
	return &models.Relationship{
		ID:        id,
		MentorID:  mentorID,
		MenteeID:  menteeID,
		Status:    status,
		Structure: models.Structure{MeetingFrequency: models.FrequencyBiweekly, FocusAreas: []string{"ml"}},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default memory", DefaultConfig(), false},
		{"badger in memory", Config{Backend: BackendBadger, InMemory: true, GCRatio: 0.5}, false},
		{"badger without path", Config{Backend: BackendBadger, GCRatio: 0.5}, true},
		{"badger bad ratio", Config{Backend: BackendBadger, InMemory: true, GCRatio: 1.5}, true},
		{"unknown backend", Config{Backend: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := Open(tt.cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				if err := s.Ping(context.Background()); err != nil {
					t.Errorf("Ping() error = %v", err)
				}
				s.Close()
			}
		})
	}
}

func TestStore_Subjects(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, subject := range []models.Subject{
			{ID: "m1", Role: models.RoleMentor, Expertise: []string{"ml"}},
			{ID: "b1", Role: models.RoleBoth},
			{ID: "e1", Role: models.RoleMentee, Goals: []string{"ml"}},
		} {
			if err := s.PutSubject(ctx, &subject); err != nil {
				t.Fatalf("PutSubject() error = %v", err)
			}
		}

		got, err := s.GetSubject(ctx, "m1")
		if err != nil || got.Expertise[0] != "ml" {
			t.Fatalf("GetSubject() = %+v, %v", got, err)
		}
		if _, err := s.GetSubject(ctx, "ghost"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		mentors, err := s.ListCandidates(ctx, models.RoleMentor)
		if err != nil {
			t.Fatalf("ListCandidates() error = %v", err)
		}
		if len(mentors) != 2 || mentors[0].ID != "b1" || mentors[1].ID != "m1" {
			t.Errorf("expected [b1 m1], got %+v", mentors)
		}
		mentees, _ := s.ListCandidates(ctx, models.RoleMentee)
		if len(mentees) != 2 || mentees[0].ID != "b1" || mentees[1].ID != "e1" {
			t.Errorf("expected [b1 e1], got %+v", mentees)
		}
	})
}

func TestStore_Content(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, id := range []string{"c3", "c1", "c2"} {
			if err := s.PutContent(ctx, &models.ContentItem{ID: id, ComplexityLevel: 2}); err != nil {
				t.Fatalf("PutContent() error = %v", err)
			}
		}
		// Upsert keeps a single copy.
		if err := s.PutContent(ctx, &models.ContentItem{ID: "c1", ComplexityLevel: 4}); err != nil {
			t.Fatalf("PutContent() error = %v", err)
		}

		items, err := s.ListContent(ctx)
		if err != nil {
			t.Fatalf("ListContent() error = %v", err)
		}
		if len(items) != 3 || items[0].ID != "c1" || items[0].ComplexityLevel != 4 {
			t.Errorf("unexpected content list: %+v", items)
		}
		if _, err := s.GetContent(ctx, "nope"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStore_Interactions(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		records := []models.Interaction{
			{UserID: "u1", ContentID: "c1", Timestamp: baseTime.Add(-48 * time.Hour)},
			{UserID: "u1", ContentID: "c2", Timestamp: baseTime.Add(-time.Hour)},
			{UserID: "u2", ContentID: "c1", Timestamp: baseTime},
			{UserID: "u2", ContentID: "c2", Timestamp: baseTime},
		}
		for i := range records {
			if err := s.RecordInteraction(ctx, &records[i]); err != nil {
				t.Fatalf("RecordInteraction() error = %v", err)
			}
		}

		all, err := s.ListInteractions(ctx, "", baseTime.Add(-24*time.Hour))
		if err != nil {
			t.Fatalf("ListInteractions() error = %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 interactions in window, got %d", len(all))
		}

		mine, _ := s.ListInteractions(ctx, "u1", time.Time{})
		if len(mine) != 2 || mine[0].ContentID != "c1" {
			t.Errorf("expected u1 history ordered by time, got %+v", mine)
		}
	})
}

func TestStore_RelationshipPairConflict(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		first := newRelationship("r1", "m1", "e1", models.StatusPending, baseTime)
		if err := s.CreateRelationship(ctx, first); err != nil {
			t.Fatalf("CreateRelationship() error = %v", err)
		}

		dup := newRelationship("r2", "m1", "e1", models.StatusPending, baseTime)
		if err := s.CreateRelationship(ctx, dup); !errors.Is(err, models.ErrConflict) {
			t.Fatalf("expected ErrConflict for duplicate pair, got %v", err)
		}
		if err := s.CreateRelationship(ctx, first); !errors.Is(err, models.ErrConflict) {
			t.Fatalf("expected ErrConflict for duplicate ID, got %v", err)
		}

		// The reverse direction is a different pair.
		reverse := newRelationship("r3", "e1", "m1", models.StatusPending, baseTime.Add(time.Minute))
		if err := s.CreateRelationship(ctx, reverse); err != nil {
			t.Fatalf("reverse pair should be allowed: %v", err)
		}

		// Ending the first frees the pair.
		ended := *first
		ended.Status = models.StatusEnded
		if err := s.UpdateRelationship(ctx, &ended); err != nil {
			t.Fatalf("UpdateRelationship() error = %v", err)
		}
		if err := s.CreateRelationship(ctx, dup); err != nil {
			t.Fatalf("expected pair to be free after end, got %v", err)
		}

		// Reviving the ended one now collides with r2.
		revived := ended
		revived.Status = models.StatusActive
		if err := s.UpdateRelationship(ctx, &revived); !errors.Is(err, models.ErrConflict) {
			t.Fatalf("expected ErrConflict reviving ended pair, got %v", err)
		}
	})
}

func TestStore_RelationshipPairIDsWithSeparator(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		if err := s.CreateRelationship(ctx, newRelationship("r1", "a:b", "c", models.StatusPending, baseTime)); err != nil {
			t.Fatalf("CreateRelationship(a:b -> c) error = %v", err)
		}
		if err := s.CreateRelationship(ctx, newRelationship("r2", "a", "b:c", models.StatusPending, baseTime)); err != nil {
			t.Fatalf("CreateRelationship(a -> b:c) error = %v", err)
		}
		if err := s.CreateRelationship(ctx, newRelationship("r3", "a:b", "c", models.StatusPending, baseTime)); !errors.Is(err, models.ErrConflict) {
			t.Fatalf("expected ErrConflict for repeated pair, got %v", err)
		}
	})
}

func TestPairKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		mentor, mentee string
		other          [2]string
	}{
		{"colon in mentor vs mentee", "a:b", "c", [2]string{"a", "b:c"}},
		{"trailing colon", "a:", "b", [2]string{"a", ":b"}},
		{"reversed pair", "m1", "e1", [2]string{"e1", "m1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if pairKey(tt.mentor, tt.mentee) == pairKey(tt.other[0], tt.other[1]) {
				t.Errorf("pairKey(%q, %q) collides with pairKey(%q, %q)", tt.mentor, tt.mentee, tt.other[0], tt.other[1])
			}
		})
	}
}

func TestStore_RelationshipUpdateAndDelete(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		rel := newRelationship("r1", "m1", "e1", models.StatusPending, baseTime)
		if err := s.CreateRelationship(ctx, rel); err != nil {
			t.Fatalf("CreateRelationship() error = %v", err)
		}

		started := baseTime.Add(time.Hour)
		rel.Status = models.StatusActive
		rel.StartedAt = &started
		if err := s.UpdateRelationship(ctx, rel); err != nil {
			t.Fatalf("UpdateRelationship() error = %v", err)
		}

		got, err := s.GetRelationship(ctx, "r1")
		if err != nil {
			t.Fatalf("GetRelationship() error = %v", err)
		}
		if got.Status != models.StatusActive || got.StartedAt == nil || !got.StartedAt.Equal(started) {
			t.Errorf("update not persisted: %+v", got)
		}

		// Mutating the returned copy must not leak into the store.
		got.Structure.FocusAreas[0] = "changed"
		again, _ := s.GetRelationship(ctx, "r1")
		if again.Structure.FocusAreas[0] != "ml" {
			t.Error("store returned an aliased relationship")
		}

		moved := *rel
		moved.MenteeID = "e2"
		if err := s.UpdateRelationship(ctx, &moved); !errors.Is(err, models.ErrConflict) {
			t.Errorf("expected ErrConflict when changing parties, got %v", err)
		}
		if err := s.UpdateRelationship(ctx, newRelationship("ghost", "m1", "e1", models.StatusActive, baseTime)); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound updating unknown relationship, got %v", err)
		}

		if err := s.DeleteRelationship(ctx, "r1"); err != nil {
			t.Fatalf("DeleteRelationship() error = %v", err)
		}
		if _, err := s.GetRelationship(ctx, "r1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := s.DeleteRelationship(ctx, "r1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("expected ErrNotFound deleting twice, got %v", err)
		}
		if err := s.CreateRelationship(ctx, newRelationship("r9", "m1", "e1", models.StatusPending, baseTime)); err != nil {
			t.Errorf("expected pair to be free after delete, got %v", err)
		}
	})
}

func TestStore_ListRelationships(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, rel := range []*models.Relationship{
			newRelationship("r2", "m1", "e1", models.StatusActive, baseTime.Add(time.Hour)),
			newRelationship("r1", "m1", "e2", models.StatusPending, baseTime),
			newRelationship("r3", "m2", "e3", models.StatusActive, baseTime),
		} {
			if err := s.CreateRelationship(ctx, rel); err != nil {
				t.Fatalf("CreateRelationship() error = %v", err)
			}
		}

		tests := []struct {
			name   string
			filter models.RelationshipFilter
			want   []string
		}{
			{"all", models.RelationshipFilter{}, []string{"r1", "r3", "r2"}},
			{"by subject", models.RelationshipFilter{SubjectID: "m1"}, []string{"r1", "r2"}},
			{"by status", models.RelationshipFilter{Statuses: []models.RelationshipStatus{models.StatusActive}}, []string{"r3", "r2"}},
			{"subject and status", models.RelationshipFilter{SubjectID: "e2", Statuses: []models.RelationshipStatus{models.StatusActive}}, []string{}},
		}

		for _, tt := range tests {
			got, err := s.ListRelationships(ctx, tt.filter)
			if err != nil {
				t.Fatalf("%s: ListRelationships() error = %v", tt.name, err)
			}
			ids := make([]string, len(got))
			for i := range got {
				ids[i] = got[i].ID
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("%s: got %v, want %v", tt.name, ids, tt.want)
			}
		}
	})
}

func TestStore_Close(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		if err := s.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := s.Ping(context.Background()); !errors.Is(err, ErrClosed) {
			t.Errorf("expected ErrClosed after Close, got %v", err)
		}
		if bs, ok := s.(*BadgerStore); ok {
			if err := bs.RunGC(); !errors.Is(err, ErrClosed) {
				t.Errorf("expected ErrClosed from RunGC, got %v", err)
			}
		}
	})
}
