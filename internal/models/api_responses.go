// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package models

import "time"

// APIResponse is the envelope written by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "success",
//	  "data": [{"candidate_id": "m-2", "score": 0.86, ...}],
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Count       int       `json:"count,omitempty"`
}

// APIError describes a failed request.
//
// Common error codes:
//   - VALIDATION_ERROR: malformed or out-of-range input
//   - INVALID_ROLE: subject role does not allow the operation
//   - SELF_MATCH: mentor and mentee are the same subject
//   - DUPLICATE_RELATIONSHIP: a non-ended relationship already exists
//   - INVALID_TRANSITION: the action is not allowed from the current status
//   - CAPACITY_REACHED: activating would exceed mentor or mentee capacity
//   - INVALID_TYPE: unknown recommendation type
//   - NOT_FOUND, UNAUTHORIZED, FORBIDDEN, INTERNAL_ERROR
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
