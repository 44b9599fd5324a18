// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package models

// Match categories for mentorship results. Content results use their
// recommendation type as category.
const (
	CategoryMentor = "mentor"
	CategoryMentee = "mentee"
)

// Insights are advisory strings attached to a mentorship match.
type Insights struct {
	Challenges        []string `json:"challenges,omitempty"`
	SuccessPredictors []string `json:"success_predictors,omitempty"`
}

// MatchResult is one scored candidate.
type MatchResult struct {
	SubjectID   string             `json:"subject_id"`
	CandidateID string             `json:"candidate_id"`
	Score       float64            `json:"score"`
	Reasons     []string           `json:"reasons"`
	Category    string             `json:"category"`
	Factors     map[string]float64 `json:"factors,omitempty"`
	Structure   *Structure         `json:"structure,omitempty"`
	Insights    *Insights          `json:"insights,omitempty"`
	Candidate   *Subject           `json:"candidate,omitempty"`
	Content     *ContentItem       `json:"content,omitempty"`
}
