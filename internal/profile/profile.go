// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

// Package profile derives the scoring context of a subject from its declared
// profile and its interaction history.
package profile

import (
	"time"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Engagement patterns derived from average interaction duration.
const (
	PatternNewUser       = "new_user"
	PatternDeepReader    = "deep_reader"
	PatternEngagedReader = "engaged_reader"
	PatternQuickBrowser  = "quick_browser"
)

// Duration thresholds (seconds) for engagement patterns.
const (
	DeepReaderSeconds    = 300
	EngagedReaderSeconds = 120
)

// GeneralFocus is used when neither a declared nor an inferred focus exists.
const GeneralFocus = "general"

// DefaultHistoryWindow is the trailing window callers use when loading interactions.
const DefaultHistoryWindow = 30 * 24 * time.Hour

// Context is the derived view of a subject used by the scorers.
type Context struct {
	SubjectID           string                 `json:"subject_id"`
	Interests           []string               `json:"interests"`
	CurrentFocus        string                 `json:"current_focus"`
	ExperienceLevel     models.ExperienceLevel `json:"experience_level"`
	PreferredComplexity int                    `json:"preferred_complexity"`
	EngagementPattern   string                 `json:"engagement_pattern"`
	InteractionCount    int                    `json:"interaction_count"`
}

// BuildContext derives a Context. It never fails: missing data falls back to
// defaults.
func BuildContext(subject *models.Subject, interactions []models.Interaction) Context {
	ctx := Context{
		SubjectID:           subject.ID,
		ExperienceLevel:     subject.ExperienceLevel,
		PreferredComplexity: subject.PreferredComplexity,
		InteractionCount:    len(interactions),
	}

	ctx.Interests = models.NormalizeTags(append(append([]string{}, subject.Interests...), InferTopics(interactions)...))

	switch {
	case subject.FocusDomain != "":
		ctx.CurrentFocus = subject.FocusDomain
	default:
		ctx.CurrentFocus = InferFocus(interactions)
		if ctx.CurrentFocus == "" {
			ctx.CurrentFocus = GeneralFocus
		}
	}

	ctx.EngagementPattern = EngagementPattern(interactions)
	return ctx
}

// EngagementPattern classifies a history by its average interaction duration.
func EngagementPattern(interactions []models.Interaction) string {
	if len(interactions) == 0 {
		return PatternNewUser
	}
	total := 0
	for i := range interactions {
		total += interactions[i].DurationSeconds
	}
	avg := float64(total) / float64(len(interactions))
	switch {
	case avg >= DeepReaderSeconds:
		return PatternDeepReader
	case avg >= EngagedReaderSeconds:
		return PatternEngagedReader
	default:
		return PatternQuickBrowser
	}
}

// InferTopics is meant to extract topics from interaction history.
// Topic extraction is not implemented; it always returns nil, so the
// interest set equals the declared interests.
func InferTopics(_ []models.Interaction) []string {
	return nil
}

// InferFocus is meant to infer a focus domain from recent interactions.
// Not implemented; it always returns "".
func InferFocus(_ []models.Interaction) string {
	return ""
}

// Recent returns the interactions whose timestamp falls within window before now.
func Recent(interactions []models.Interaction, now time.Time, window time.Duration) []models.Interaction {
	cutoff := now.Add(-window)
	out := make([]models.Interaction, 0, len(interactions))
	for i := range interactions {
		if !interactions[i].Timestamp.Before(cutoff) {
			out = append(out, interactions[i])
		}
	}
	return out
}
