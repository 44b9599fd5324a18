// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

/*
Package api exposes mentorship matching and content recommendations over HTTP.

Routes are served by a chi router under /api/v1 and every response uses the
models.APIResponse envelope:

	GET    /api/v1/health, /health/live, /health/ready
	GET    /api/v1/mentorship/subjects/{subjectID}/mentors
	GET    /api/v1/mentorship/subjects/{subjectID}/mentees
	GET    /api/v1/mentorship/relationships
	POST   /api/v1/mentorship/relationships
	GET    /api/v1/mentorship/relationships/{relationshipID}
	POST   /api/v1/mentorship/relationships/{relationshipID}/actions
	DELETE /api/v1/mentorship/relationships/{relationshipID}
	GET    /api/v1/recommendations/trending
	GET    /api/v1/recommendations/{type}/{subjectID}
	POST   /api/v1/interactions
	GET    /metrics

Everything except health and /metrics requires an authenticated subject
(see the auth package). Match searches and personalized recommendations are
only served for the requesting subject itself.

Domain errors are translated to status codes in one place,
respondServiceError, so handlers never choose status codes for service
failures themselves.
*/
package api
