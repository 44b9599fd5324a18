// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"errors"
	"fmt"

	"github.com/tomtom215/mentormatch/internal/models"
)

var (
	// ErrInvalidRole is returned when a subject's role does not allow the operation.
	ErrInvalidRole = errors.New("invalid role for operation")

	// ErrSelfMatch is returned when mentor and mentee are the same subject.
	ErrSelfMatch = errors.New("mentor and mentee must be different subjects")

	// ErrDuplicateRelationship is returned when a non-ended relationship already
	// exists for the pair. The concrete error is *DuplicateRelationshipError.
	ErrDuplicateRelationship = errors.New("relationship already exists")

	// ErrUnauthorized is returned when the requester is not a party of the relationship.
	ErrUnauthorized = errors.New("requester is not a party of the relationship")

	// ErrInvalidTransition is returned when an action is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid relationship transition")

	// ErrCapacityReached is returned when activating a relationship would exceed
	// mentor capacity or give a mentee a second active mentorship.
	ErrCapacityReached = errors.New("mentorship capacity reached")
)

// RoleError reports a subject whose role is inconsistent with the requested operation.
type RoleError struct {
	SubjectID string
	Role      models.Role
	Want      models.Role
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("subject %s has role %q, operation requires %s", e.SubjectID, e.Role, e.Want)
}

// Unwrap returns ErrInvalidRole.
func (e *RoleError) Unwrap() error { return ErrInvalidRole }

// DuplicateRelationshipError carries the relationship that blocked creation so
// the caller can decide what to do next.
type DuplicateRelationshipError struct {
	Existing *models.Relationship
}

func (e *DuplicateRelationshipError) Error() string {
	return fmt.Sprintf("relationship %s between mentor %s and mentee %s is %s",
		e.Existing.ID, e.Existing.MentorID, e.Existing.MenteeID, e.Existing.Status)
}

// Unwrap returns ErrDuplicateRelationship.
func (e *DuplicateRelationshipError) Unwrap() error { return ErrDuplicateRelationship }

// TransitionError describes a rejected lifecycle action.
type TransitionError struct {
	Action Action
	From   models.RelationshipStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s relationship", e.Action, e.From)
}

// Unwrap returns ErrInvalidTransition.
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
