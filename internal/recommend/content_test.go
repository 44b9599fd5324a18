// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"math"
	"slices"
	"testing"

	"github.com/tomtom215/mentormatch/internal/models"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestTagOverlap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		a, b      []string
		wantRatio float64
		wantCount int
	}{
		{"both empty", nil, nil, 0, 0},
		{"one empty", []string{"ml"}, nil, 0, 0},
		{"case insensitive", []string{"ML", "ethics"}, []string{"ml", "policy"}, 0.5, 1},
		{"divides by larger set", []string{"ml"}, []string{"ml", "ethics", "policy", "law"}, 0.25, 1},
		{"duplicates collapse", []string{"ml", "ml"}, []string{"ml"}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ratio, count := TagOverlap(tt.a, tt.b)
			if !approxEqual(ratio, tt.wantRatio) || count != tt.wantCount {
				t.Errorf("TagOverlap() = (%v, %d), want (%v, %d)", ratio, count, tt.wantRatio, tt.wantCount)
			}
		})
	}
}

func TestScoreContent_Prerequisites(t *testing.T) {
	t.Parallel()

	source := &models.ContentItem{ID: "src", Domain: "ai", Tags: []string{"ml", "ethics"}, ComplexityLevel: 3}
	candidate := &models.ContentItem{ID: "c", Domain: "AI", Tags: []string{"ml", "fairness", "ethics"}, ComplexityLevel: 2, QualityScore: 0.9}

	got := ScoreContent(source, candidate, TypePrerequisites, DefaultTables()[TypePrerequisites])

	// 0.25*1 + 0.30*(2/3) + 0.35*1 + 0.10*0.9
	if !approxEqual(got.Score, 0.89) {
		t.Errorf("expected score 0.89, got %v", got.Score)
	}
	for _, want := range []string{"Same domain: AI", "2 shared tags", "Foundation level", "High quality content"} {
		if !slices.Contains(got.Reasons, want) {
			t.Errorf("expected reason %q in %v", want, got.Reasons)
		}
	}
	if got.Factors[FactorComplexity] != 1.0 {
		t.Errorf("expected complexity factor 1.0, got %v", got.Factors[FactorComplexity])
	}
}

func TestScoreContent_FoundationBonusOnlyOneLevelDown(t *testing.T) {
	t.Parallel()

	source := &models.ContentItem{ID: "src", Domain: "ai", ComplexityLevel: 3}
	table := DefaultTables()[TypePrerequisites]

	for level := 1; level <= 5; level++ {
		candidate := &models.ContentItem{ID: "c", Domain: "ai", ComplexityLevel: level}
		got := ScoreContent(source, candidate, TypePrerequisites, table)
		hasBonus := slices.Contains(got.Reasons, "Foundation level")
		if hasBonus != (level == 2) {
			t.Errorf("level %d: Foundation level reason present = %v", level, hasBonus)
		}
	}
}

func TestComplexityFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		t         Type
		source    int
		candidate int
		want      float64
	}{
		{"next step one up", TypeNextSteps, 2, 3, 1.0},
		{"next step two up", TypeNextSteps, 2, 4, 0.6},
		{"next step same", TypeNextSteps, 2, 2, 0.4},
		{"next step backwards", TypeNextSteps, 3, 1, 0.1},
		{"prerequisite one down", TypePrerequisites, 3, 2, 1.0},
		{"prerequisite two down", TypePrerequisites, 3, 1, 0.5},
		{"prerequisite harder", TypePrerequisites, 3, 4, 0},
		{"example same level", TypeExamples, 3, 3, 1.0},
		{"example adjacent", TypeExamples, 3, 4, 0.6},
		{"example distant", TypeExamples, 1, 5, 0.2},
		{"related same", TypeRelated, 2, 2, 1.0},
		{"related distance two", TypeRelated, 1, 3, 0.5},
		{"related max distance", TypeRelated, 1, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _ := complexityFactor(tt.t, tt.source, tt.candidate)
			if !approxEqual(got, tt.want) {
				t.Errorf("complexityFactor(%s, %d, %d) = %v, want %v", tt.t, tt.source, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestScoreContent_Bounded(t *testing.T) {
	t.Parallel()

	source := &models.ContentItem{ID: "src", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 2}
	candidate := &models.ContentItem{ID: "c", Domain: "ai", Tags: []string{"ml"}, ComplexityLevel: 2, QualityScore: 7}

	for _, typ := range []Type{TypeRelated, TypeNextSteps, TypePrerequisites, TypeExamples} {
		got := ScoreContent(source, candidate, typ, DefaultTables()[typ])
		if got.Score < 0 || got.Score > 1 {
			t.Errorf("%s: score %v outside [0,1]", typ, got.Score)
		}
	}
}
