// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Factor names used in score breakdowns.
const (
	FactorDomain     = "domain"
	FactorTags       = "tags"
	FactorComplexity = "complexity"
	FactorQuality    = "quality"
	FactorInterests  = "interests"
	FactorFocus      = "focus"
	FactorVelocity   = "velocity"
	FactorDepth      = "depth"
	FactorFreshness  = "freshness"
)

const highQuality = 0.8

// Scored is the outcome of scoring one candidate.
type Scored struct {
	Score   float64
	Reasons []string
	Factors map[string]float64
}

// ScoreContent scores candidate against source for a content-anchored type.
// The result is clamped to [0,1].
func ScoreContent(source, candidate *models.ContentItem, t Type, table Table) Scored {
	s := Scored{Factors: make(map[string]float64, 4)}

	domain := 0.0
	if source.Domain != "" && strings.EqualFold(source.Domain, candidate.Domain) {
		domain = 1.0
		s.Reasons = append(s.Reasons, fmt.Sprintf("Same domain: %s", candidate.Domain))
	}
	s.Factors[FactorDomain] = domain

	tags, shared := TagOverlap(source.Tags, candidate.Tags)
	if shared > 0 {
		s.Reasons = append(s.Reasons, fmt.Sprintf("%d shared tags", shared))
	}
	s.Factors[FactorTags] = tags

	complexity, reason := complexityFactor(t, source.ComplexityLevel, candidate.ComplexityLevel)
	if reason != "" {
		s.Reasons = append(s.Reasons, reason)
	}
	s.Factors[FactorComplexity] = complexity

	quality := clamp(candidate.QualityScore, 0, 1)
	if quality >= highQuality {
		s.Reasons = append(s.Reasons, "High quality content")
	}
	s.Factors[FactorQuality] = quality

	w := table.Weights
	s.Score = clamp(domain*w.Domain+tags*w.Tags+complexity*w.Complexity+quality*w.Quality, 0, 1)
	return s
}

// TagOverlap returns shared tags divided by the larger tag set, and the
// shared count. Two empty sets overlap by 0.
func TagOverlap(a, b []string) (float64, int) {
	a = models.NormalizeTags(a)
	b = models.NormalizeTags(b)
	larger := max(len(a), len(b))
	if larger == 0 {
		return 0, 0
	}
	shared := len(models.SharedTags(a, b))
	return float64(shared) / float64(larger), shared
}

// complexityFactor applies the type-specific complexity rule.
func complexityFactor(t Type, source, candidate int) (float64, string) {
	switch t {
	case TypeNextSteps:
		switch candidate - source {
		case 1:
			return 1.0, "Next level up"
		case 2:
			return 0.6, "Advanced follow-up"
		case 0:
			return 0.4, ""
		default:
			return 0.1, ""
		}
	case TypePrerequisites:
		switch source - candidate {
		case 1:
			return 1.0, "Foundation level"
		case 2:
			return 0.5, "Background material"
		default:
			return 0, ""
		}
	case TypeExamples:
		switch d := abs(candidate - source); d {
		case 0:
			return 1.0, "Same complexity level"
		case 1:
			return 0.6, ""
		default:
			return 0.2, ""
		}
	default:
		d := abs(candidate - source)
		f := clamp(1-float64(d)/4, 0, 1)
		if d == 0 {
			return f, "Same complexity level"
		}
		return f, ""
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
