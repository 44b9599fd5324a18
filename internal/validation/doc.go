// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the whole process; it caches struct
// metadata and is safe for concurrent use. Field names in errors are taken from
// the json tag so that API clients see the same names they send:
//
//	req := mentorship.ActionRequest{Action: "bogus"}
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Message == "action must be one of: accept decline ..."
//	}
//
// Custom validators:
//
//   - tags: every element of a string slice is non-blank and at most
//     MaxTagLength characters, and the slice holds at most MaxTags entries.
package validation
