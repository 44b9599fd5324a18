// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/mentormatch/internal/models"
)

// MaxTrendingScore is the ceiling of the trending scale.
const MaxTrendingScore = 2.0

// Trending accumulator caps.
const (
	velocityMax = 1.0
	depthMax    = 0.4
	freshBoost  = 0.3
	recentBoost = 0.15
	qualityMax  = 0.3
)

// Engagement aggregates interactions of one item inside the trending window.
type Engagement struct {
	Count         int
	TotalDuration int
}

// AggregateEngagement groups interactions by content ID.
func AggregateEngagement(interactions []models.Interaction) map[string]Engagement {
	out := make(map[string]Engagement)
	for i := range interactions {
		e := out[interactions[i].ContentID]
		e.Count++
		e.TotalDuration += interactions[i].DurationSeconds
		out[interactions[i].ContentID] = e
	}
	return out
}

// TrendingScore scores item on the [0,2] trending scale. peak is the highest
// interaction count of any item in the window.
func TrendingScore(item *models.ContentItem, e Engagement, peak int, now time.Time, cfg TrendingConfig) Scored {
	s := Scored{Factors: make(map[string]float64, 4)}

	velocity := 0.0
	if peak > 0 && e.Count > 0 {
		velocity = velocityMax * float64(e.Count) / float64(peak)
		s.Reasons = append(s.Reasons, fmt.Sprintf("%d recent interactions", e.Count))
	}
	s.Factors[FactorVelocity] = velocity

	depth := 0.0
	if e.Count > 0 {
		avg := float64(e.TotalDuration) / float64(e.Count)
		depth = depthMax * clamp(avg/float64(cfg.DepthSeconds), 0, 1)
		if depth >= depthMax/2 {
			s.Reasons = append(s.Reasons, "Deep engagement")
		}
	}
	s.Factors[FactorDepth] = depth

	freshness := 0.0
	age := now.Sub(item.CreatedAt)
	switch {
	case item.CreatedAt.IsZero() || age < 0:
	case age <= cfg.FreshWindow:
		freshness = freshBoost
		s.Reasons = append(s.Reasons, "New content")
	case age <= cfg.RecentWindow:
		freshness = recentBoost
	}
	s.Factors[FactorFreshness] = freshness

	quality := qualityMax * clamp(item.QualityScore, 0, 1)
	s.Factors[FactorQuality] = quality

	s.Score = clamp(velocity+depth+freshness+quality, 0, MaxTrendingScore)
	return s
}
