// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package models

import "errors"

// Errors returned by data-layer implementations. Callers match them with errors.Is.
var (
	// ErrNotFound is returned when a subject, content item or relationship does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would violate a uniqueness rule,
	// such as a second non-ended relationship for the same mentor and mentee.
	ErrConflict = errors.New("conflict")
)
