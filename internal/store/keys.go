// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package store

import (
	"errors"
	"sort"
	"strconv"

	"github.com/tomtom215/mentormatch/internal/models"
)

// ErrClosed is returned by Ping after Close.
var ErrClosed = errors.New("store is closed")

// Key prefixes shared by the backends.
const (
	subjectPrefix      = "subject:"
	contentPrefix      = "content:"
	interactionPrefix  = "interaction:"
	relationshipPrefix = "relationship:"
	pairPrefix         = "pair:"
)

// pairKey identifies an ordered (mentor, mentee) pair. The mentor ID is
// length-prefixed so IDs containing ':' cannot collide.
func pairKey(mentorID, menteeID string) string {
	return pairPrefix + strconv.Itoa(len(mentorID)) + ":" + mentorID + ":" + menteeID
}

// canActAs reports whether a subject with role have can fill role want.
func canActAs(have, want models.Role) bool {
	switch want {
	case models.RoleMentor:
		return have.CanMentor()
	case models.RoleMentee:
		return have.CanBeMentored()
	default:
		return have == want
	}
}

// sortRelationships orders by creation time, then ID.
func sortRelationships(rels []models.Relationship) {
	sort.Slice(rels, func(i, j int) bool {
		if !rels[i].CreatedAt.Equal(rels[j].CreatedAt) {
			return rels[i].CreatedAt.Before(rels[j].CreatedAt)
		}
		return rels[i].ID < rels[j].ID
	})
}
