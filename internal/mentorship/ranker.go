// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"math"
	"sort"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Intent selects which side of the pairing the candidates play.
type Intent int

const (
	// FindMentors ranks mentor candidates for a mentee subject.
	FindMentors Intent = iota
	// FindMentees ranks mentee candidates for a mentor subject.
	FindMentees
)

func (i Intent) String() string {
	if i == FindMentees {
		return models.CategoryMentee
	}
	return models.CategoryMentor
}

// Capacity bounds.
const (
	MinCapacity = 1
	MaxCapacity = 4
)

// DefaultLimit is the number of matches returned when no limit is given.
const DefaultLimit = 5

// Capacity returns how many active mentees a mentor may hold. An explicit
// MaxMentees wins; otherwise it is round(EngagementLevel * 1.5). Both are
// clamped to [1,4].
func Capacity(mentor *models.Subject) int {
	c := mentor.MaxMentees
	if c <= 0 {
		c = int(math.Round(float64(mentor.EngagementLevel) * 1.5))
	}
	switch {
	case c < MinCapacity:
		return MinCapacity
	case c > MaxCapacity:
		return MaxCapacity
	default:
		return c
	}
}

// Load summarises existing relationships relevant to a ranking call.
type Load struct {
	// ActiveAsMentor counts active relationships per mentor ID.
	ActiveAsMentor map[string]int
	// ActiveAsMentee counts active relationships per mentee ID.
	ActiveAsMentee map[string]int
	// Paired holds candidate IDs that already share a non-ended
	// relationship with the subject.
	Paired map[string]struct{}
}

// BuildLoad derives a Load for subjectID from a relationship snapshot.
func BuildLoad(subjectID string, relationships []models.Relationship) Load {
	l := Load{
		ActiveAsMentor: make(map[string]int),
		ActiveAsMentee: make(map[string]int),
		Paired:         make(map[string]struct{}),
	}
	for i := range relationships {
		r := &relationships[i]
		if r.Status == models.StatusActive {
			l.ActiveAsMentor[r.MentorID]++
			l.ActiveAsMentee[r.MenteeID]++
		}
		if !r.Blocks() {
			continue
		}
		switch subjectID {
		case r.MentorID:
			l.Paired[r.MenteeID] = struct{}{}
		case r.MenteeID:
			l.Paired[r.MentorID] = struct{}{}
		}
	}
	return l
}

// RankOptions tune a ranking call.
type RankOptions struct {
	Limit     int
	Exclude   []string
	Weights   Weights
	Threshold float64
}

// Ranked is a match result together with the compatibility it was scored
// from, so decoration never has to score the pair again.
type Ranked struct {
	Result        models.MatchResult
	Compatibility Compatibility
}

// RankCandidates filters pool, scores the survivors against subject and
// returns at most opts.Limit results sorted by score descending.
func RankCandidates(subject *models.Subject, pool []models.Subject, intent Intent, load Load, opts RankOptions) []models.MatchResult {
	ranked := Rank(subject, pool, intent, load, opts)
	results := make([]models.MatchResult, len(ranked))
	for i := range ranked {
		results[i] = ranked[i].Result
	}
	return results
}

// Rank is RankCandidates keeping each result's Compatibility.
//
// Filters, in order: the subject itself; mentors at capacity (FindMentors);
// mentees that already hold an active relationship (FindMentees); candidates
// already paired with the subject; explicit exclusions. A mentor subject that
// is itself at capacity gets no mentee candidates.
func Rank(subject *models.Subject, pool []models.Subject, intent Intent, load Load, opts RankOptions) []Ranked {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	weights := effectiveWeights(opts.Weights)

	if intent == FindMentees && load.ActiveAsMentor[subject.ID] >= Capacity(subject) {
		return []Ranked{}
	}

	exclude := make(map[string]struct{}, len(opts.Exclude))
	for _, id := range opts.Exclude {
		exclude[id] = struct{}{}
	}

	ranked := make([]Ranked, 0, len(pool))
	for i := range pool {
		cand := &pool[i]
		if cand.ID == subject.ID {
			continue
		}
		switch intent {
		case FindMentors:
			if load.ActiveAsMentor[cand.ID] >= Capacity(cand) {
				continue
			}
		case FindMentees:
			if load.ActiveAsMentee[cand.ID] >= 1 {
				continue
			}
		}
		if _, ok := load.Paired[cand.ID]; ok {
			continue
		}
		if _, ok := exclude[cand.ID]; ok {
			continue
		}

		mentor, mentee := subject, cand
		if intent == FindMentors {
			mentor, mentee = cand, subject
		}
		comp := Score(mentor, mentee, weights)
		if comp.Score < opts.Threshold {
			continue
		}

		ranked = append(ranked, Ranked{
			Result: models.MatchResult{
				SubjectID:   subject.ID,
				CandidateID: cand.ID,
				Score:       comp.Score,
				Reasons:     comp.Reasons,
				Category:    intent.String(),
				Factors:     comp.Factors,
				Candidate:   cand,
			},
			Compatibility: comp,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i].Result, &ranked[j].Result
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.CandidateID < b.CandidateID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func effectiveWeights(w Weights) Weights {
	if w.Sum() == 0 {
		return DefaultWeights()
	}
	return w
}
