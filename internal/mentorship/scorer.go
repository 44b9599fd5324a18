// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Factor names used in the score breakdown.
const (
	FactorExpertise     = "expertise"
	FactorExperience    = "experience"
	FactorCommunication = "communication"
	FactorAvailability  = "availability"
	FactorCultural      = "cultural"
)

// Weights are the factor weights of the compatibility score.
type Weights struct {
	Expertise     float64 `json:"expertise"`
	Experience    float64 `json:"experience"`
	Communication float64 `json:"communication"`
	Availability  float64 `json:"availability"`
	Cultural      float64 `json:"cultural"`
}

// DefaultWeights returns the standard weights. They sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		Expertise:     0.40,
		Experience:    0.25,
		Communication: 0.20,
		Availability:  0.10,
		Cultural:      0.05,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Expertise + w.Experience + w.Communication + w.Availability + w.Cultural
}

// Validate checks that every weight is in [0,1] and the total is 1.0.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		FactorExpertise:     w.Expertise,
		FactorExperience:    w.Experience,
		FactorCommunication: w.Communication,
		FactorAvailability:  w.Availability,
		FactorCultural:      w.Cultural,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("weight %s must be in [0,1], got %f", name, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 1e-6 {
		return fmt.Errorf("weights must sum to 1.0, got %f", w.Sum())
	}
	return nil
}

// Heuristic factor values.
const (
	expertiseSharedFocus    = 0.6
	expertiseInterestCap    = 0.5
	expertiseFloor          = 0.1
	availabilityPlaceholder = 0.7
	culturalNeutral         = 0.7
	culturalShared          = 0.9
	culturalDisjoint        = 0.6
	communicationIdentical  = 1.0
	communicationMixed      = 0.8
	communicationMismatch   = 0.5
)

// Compatibility is the result of scoring a mentor against a mentee.
type Compatibility struct {
	Score        float64
	Reasons      []string
	Factors      map[string]float64
	GoalMatches  int
	SharedDomain bool
}

// Score computes the weighted compatibility of mentor and mentee.
// It is a pure function; the result is clamped to [0,1].
func Score(mentor, mentee *models.Subject, w Weights) Compatibility {
	c := Compatibility{Factors: make(map[string]float64, 5)}

	expertise, reason, matches := expertiseFactor(mentor, mentee)
	c.GoalMatches = matches
	c.SharedDomain = sameDomain(mentor.FocusDomain, mentee.FocusDomain)
	c.add(FactorExpertise, expertise, reason)

	experience, reason := experienceFactor(mentor.ExperienceLevel, mentee.ExperienceLevel)
	c.add(FactorExperience, experience, reason)

	communication, reason := communicationFactor(mentor.CommunicationStyle, mentee.CommunicationStyle)
	c.add(FactorCommunication, communication, reason)

	availability := AvailabilityOverlap(mentor, mentee)
	c.add(FactorAvailability, availability, "Availability assumed partially compatible")

	cultural, reason := culturalFactor(mentor.CulturalConsiderations, mentee.CulturalConsiderations)
	c.add(FactorCultural, cultural, reason)

	total := expertise*w.Expertise +
		experience*w.Experience +
		communication*w.Communication +
		availability*w.Availability +
		cultural*w.Cultural
	c.Score = clamp01(total)
	return c
}

func (c *Compatibility) add(name string, value float64, reason string) {
	c.Factors[name] = value
	if reason != "" {
		c.Reasons = append(c.Reasons, reason)
	}
}

// AvailabilityOverlap is meant to intersect the two parties' availability
// windows. Availability windows are not modelled yet, so it returns a fixed
// 0.7 for every pair.
func AvailabilityOverlap(_, _ *models.Subject) float64 {
	return availabilityPlaceholder
}

func expertiseFactor(mentor, mentee *models.Subject) (float64, string, int) {
	goals := models.NormalizeTags(mentee.Goals)
	expertise := models.NormalizeTags(mentor.Expertise)

	matches := 0
	for _, g := range goals {
		for _, e := range expertise {
			if TagsMatch(g, e) {
				matches++
				break
			}
		}
	}

	if matches > 0 {
		return float64(matches) / float64(len(goals)),
			fmt.Sprintf("%d expertise-goal matches found", matches), matches
	}

	if sameDomain(mentor.FocusDomain, mentee.FocusDomain) {
		return expertiseSharedFocus, fmt.Sprintf("Shared focus domain: %s", mentee.FocusDomain), 0
	}

	interests := models.NormalizeTags(mentee.Interests)
	if shared := len(models.SharedTags(interests, mentor.Interests)); shared > 0 {
		frac := math.Min(float64(shared)/float64(len(interests)), expertiseInterestCap)
		return frac, fmt.Sprintf("%d shared interests", shared), 0
	}

	return expertiseFloor, "Limited expertise overlap with mentee goals", 0
}

func experienceFactor(mentor, mentee models.ExperienceLevel) (float64, string) {
	gap := mentor.Ordinal() - mentee.Ordinal()
	switch {
	case gap == 1:
		return 1.0, "Optimal experience gap: mentor is 1 level ahead"
	case gap == 2:
		return 0.8, "Good experience gap: mentor is 2 levels ahead"
	case gap == 0:
		return 0.6, "Peer-level experience"
	case gap < 0:
		return 0.3, "Mentee has more experience than mentor"
	default:
		return 0.4, "Large experience gap"
	}
}

func communicationFactor(a, b string) (float64, string) {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	switch {
	case a != "" && a == b:
		return communicationIdentical, fmt.Sprintf("Matching communication style: %s", a)
	case a == models.CommunicationMixed || b == models.CommunicationMixed:
		return communicationMixed, "Flexible communication style"
	default:
		return communicationMismatch, "Different communication styles"
	}
}

func culturalFactor(a, b []string) (float64, string) {
	a = models.NormalizeTags(a)
	b = models.NormalizeTags(b)
	switch {
	case len(a) == 0 && len(b) == 0:
		return culturalNeutral, ""
	case len(models.SharedTags(a, b)) > 0:
		return culturalShared, "Shared cultural considerations"
	default:
		return culturalDisjoint, ""
	}
}

// TagsMatch reports whether two tags match: after lower-casing and folding
// '-' and '_' to spaces, either contains the other.
func TagsMatch(a, b string) bool {
	a, b = foldTag(a), foldTag(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

var tagFolder = strings.NewReplacer("-", " ", "_", " ")

func foldTag(s string) string {
	return strings.TrimSpace(tagFolder.Replace(strings.ToLower(s)))
}

func sameDomain(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
