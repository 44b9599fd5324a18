// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/mentormatch/internal/models"
	"github.com/tomtom215/mentormatch/internal/profile"
)

// PreferredComplexity returns the declared preference or a level derived
// from experience: beginner 2, intermediate 3, advanced 4.
func PreferredComplexity(pc profile.Context) int {
	if pc.PreferredComplexity > 0 {
		return pc.PreferredComplexity
	}
	return pc.ExperienceLevel.Ordinal() + 2
}

// ScorePersonalized scores item for a user context. Table weights are read
// as interests (Tags), focus (Domain), complexity preference and quality.
func ScorePersonalized(pc profile.Context, item *models.ContentItem, table Table) Scored {
	s := Scored{Factors: make(map[string]float64, 4)}

	interests := 0.0
	tags := models.NormalizeTags(item.Tags)
	if len(tags) > 0 && len(pc.Interests) > 0 {
		matched := 0
		for _, tag := range tags {
			for _, in := range pc.Interests {
				if strings.EqualFold(tag, in) {
					matched++
					break
				}
			}
		}
		interests = float64(matched) / float64(len(tags))
		if matched > 0 {
			s.Reasons = append(s.Reasons, fmt.Sprintf("Matches %d of your interests", matched))
		}
	}
	s.Factors[FactorInterests] = interests

	focus := 0.0
	switch {
	case item.Domain != "" && strings.EqualFold(item.Domain, pc.CurrentFocus):
		focus = 1.0
		s.Reasons = append(s.Reasons, fmt.Sprintf("In your focus area: %s", item.Domain))
	case pc.CurrentFocus == profile.GeneralFocus:
		focus = 0.5
	}
	s.Factors[FactorFocus] = focus

	pref := PreferredComplexity(pc)
	d := abs(item.ComplexityLevel - pref)
	complexity := clamp(1-float64(d)/4, 0, 1)
	if d == 0 {
		s.Reasons = append(s.Reasons, "Matches your preferred complexity")
	}
	s.Factors[FactorComplexity] = complexity

	quality := clamp(item.QualityScore, 0, 1)
	if quality >= highQuality {
		s.Reasons = append(s.Reasons, "High quality content")
	}
	s.Factors[FactorQuality] = quality

	w := table.Weights
	s.Score = clamp(interests*w.Tags+focus*w.Domain+complexity*w.Complexity+quality*w.Quality, 0, 1)
	return s
}
