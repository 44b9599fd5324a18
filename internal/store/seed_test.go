// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/mentormatch/internal/models"
)

const testSeed = `{
  "subjects": [
    {"id": "m1", "role": "mentor", "expertise": ["ML", "ml", " ethics "], "engagement_score": 0.8},
    {"id": "e1", "role": "mentee", "goals": ["ml"], "engagement_score": 0.4}
  ],
  "content": [
    {"id": "c1", "title": "Intro", "kind": "article", "domain": "ai", "tags": ["ml"], "complexity_level": 2, "quality_score": 0.7}
  ],
  "interactions": [
    {"user_id": "e1", "content_id": "c1", "kind": "view", "duration_seconds": 120, "timestamp": "2026-01-10T10:00:00Z"}
  ],
  "relationships": [
    {"id": "r1", "mentor_id": "m1", "mentee_id": "e1", "status": "active", "structure": {"meeting_frequency": "weekly"}, "match_score": 0.8}
  ]
}`

func TestLoadAndApplySeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(testSeed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	seed, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile() error = %v", err)
	}

	s := NewMemoryStore()
	ctx := context.Background()
	stats, err := ApplySeed(ctx, s, seed)
	if err != nil {
		t.Fatalf("ApplySeed() error = %v", err)
	}
	if stats.Subjects != 2 || stats.Content != 1 || stats.Interactions != 1 || stats.Relationships != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	mentor, err := s.GetSubject(ctx, "m1")
	if err != nil {
		t.Fatalf("GetSubject() error = %v", err)
	}
	if strings.Join(mentor.Expertise, ",") != "ML,ethics" {
		t.Errorf("expected normalized expertise, got %v", mentor.Expertise)
	}

	// Re-applying skips the already linked pair.
	stats, err = ApplySeed(ctx, s, seed)
	if err != nil {
		t.Fatalf("second ApplySeed() error = %v", err)
	}
	if stats.Skipped != 1 || stats.Relationships != 0 {
		t.Errorf("expected relationship to be skipped, got %+v", stats)
	}
}

func TestDecodeSeed_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"subjects": [`},
		{"unknown field", `{"mentors": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := DecodeSeed(strings.NewReader(tt.doc)); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}

func TestApplySeed_RejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed Seed
	}{
		{"subject without role", Seed{Subjects: []models.Subject{{ID: "x"}}}},
		{"content out of range", Seed{Content: []models.ContentItem{{ID: "c", ComplexityLevel: 9}}}},
		{"interaction without user", Seed{Interactions: []models.Interaction{{ContentID: "c"}}}},
		{"relationship without status", Seed{Relationships: []models.Relationship{{ID: "r", MentorID: "m", MenteeID: "e"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ApplySeed(context.Background(), NewMemoryStore(), &tt.seed); err == nil {
				t.Error("expected ApplySeed to fail")
			}
		})
	}
}
