// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"strings"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Structure generation constants.
const (
	MaxFocusAreas = 3
	MaxMilestones = 4

	busyMentorThreshold = 2

	durationWithHistory = 4
	durationBeginner    = 8
	durationDefault     = 6
)

// milestoneTemplate is the ordered milestone list; only the first
// MaxMilestones entries are suggested.
var milestoneTemplate = [...]string{
	"Agree on goals and expectations",
	"Complete an initial skills assessment",
	"Finish a first focused learning project",
	"Hold a mid-point progress review",
	"Apply learnings in a real-world context",
	"Capture reflections and lessons learned",
}

// SuggestStructure proposes cadence, duration, focus areas and milestones for
// a pair. mentorActive is the number of active mentees the mentor already has.
func SuggestStructure(mentor, mentee *models.Subject, mentorActive int) models.Structure {
	return models.Structure{
		MeetingFrequency: meetingFrequency(mentee, mentorActive),
		DurationMonths:   suggestedDuration(mentee),
		FocusAreas:       FocusAreas(mentor, mentee),
		Milestones:       Milestones(),
	}
}

func meetingFrequency(mentee *models.Subject, mentorActive int) string {
	switch {
	case mentee.ExperienceLevel == models.ExperienceBeginner:
		return models.FrequencyWeekly
	case mentorActive >= busyMentorThreshold:
		return models.FrequencyMonthly
	default:
		return models.FrequencyBiweekly
	}
}

func suggestedDuration(mentee *models.Subject) int {
	switch {
	case mentee.PriorMentorships > 0:
		return durationWithHistory
	case mentee.ExperienceLevel == models.ExperienceBeginner:
		return durationBeginner
	default:
		return durationDefault
	}
}

// FocusAreas returns mentor expertise tags that match a mentee goal, followed
// by the shared focus domain. The list is de-duplicated and capped at three.
func FocusAreas(mentor, mentee *models.Subject) []string {
	var areas []string
	goals := models.NormalizeTags(mentee.Goals)
	for _, e := range models.NormalizeTags(mentor.Expertise) {
		for _, g := range goals {
			if TagsMatch(e, g) {
				areas = append(areas, e)
				break
			}
		}
	}
	if sameDomain(mentor.FocusDomain, mentee.FocusDomain) {
		areas = append(areas, mentee.FocusDomain)
	}
	areas = models.NormalizeTags(areas)
	if len(areas) > MaxFocusAreas {
		areas = areas[:MaxFocusAreas]
	}
	return areas
}

// Milestones returns the first MaxMilestones template milestones.
func Milestones() []string {
	out := make([]string, MaxMilestones)
	copy(out, milestoneTemplate[:MaxMilestones])
	return out
}

// BuildInsights returns advisory challenge and success-predictor strings.
// They carry no weight in the score.
func BuildInsights(mentor, mentee *models.Subject, comp *Compatibility, mentorActive int) models.Insights {
	var in models.Insights

	if mentorActive >= busyMentorThreshold {
		in.Challenges = append(in.Challenges, "Mentor has multiple mentees")
	}
	switch gap := mentor.ExperienceLevel.Ordinal() - mentee.ExperienceLevel.Ordinal(); {
	case gap < 0:
		in.Challenges = append(in.Challenges, "Mentee is more experienced than mentor")
	case gap == 0:
		in.Challenges = append(in.Challenges, "Peer-level pairing may need a co-learning format")
	}
	if comp.Factors[FactorCommunication] == communicationMismatch {
		in.Challenges = append(in.Challenges, "Communication styles differ")
	}
	if comp.GoalMatches == 0 {
		in.Challenges = append(in.Challenges, "Mentor expertise does not directly cover mentee goals")
	}

	if strings.EqualFold(mentee.CommitmentLevel, "high") {
		in.SuccessPredictors = append(in.SuccessPredictors, "High mentee commitment level")
	}
	if mentor.PriorMentorships > 0 {
		in.SuccessPredictors = append(in.SuccessPredictors, "Mentor has prior mentoring experience")
	}
	if mentor.EngagementScore >= 0.7 {
		in.SuccessPredictors = append(in.SuccessPredictors, "Highly engaged mentor")
	}
	if comp.Factors[FactorExpertise] >= 0.5 {
		in.SuccessPredictors = append(in.SuccessPredictors, "Strong expertise alignment")
	}
	if comp.SharedDomain {
		in.SuccessPredictors = append(in.SuccessPredictors, "Shared focus domain")
	}
	return in
}

// Decorate attaches a suggested structure and insights to every ranked
// result that carries its candidate record, and returns the results.
func Decorate(subject *models.Subject, ranked []Ranked, intent Intent, load Load) []models.MatchResult {
	results := make([]models.MatchResult, len(ranked))
	for i := range ranked {
		r := ranked[i].Result
		if r.Candidate != nil {
			mentor, mentee := subject, r.Candidate
			if intent == FindMentors {
				mentor, mentee = r.Candidate, subject
			}
			active := load.ActiveAsMentor[mentor.ID]
			st := SuggestStructure(mentor, mentee, active)
			in := BuildInsights(mentor, mentee, &ranked[i].Compatibility, active)
			r.Structure = &st
			r.Insights = &in
		}
		results[i] = r
	}
	return results
}
