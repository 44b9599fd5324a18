// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

// Package auth resolves the requesting subject of an HTTP request.
//
// Two modes are supported:
//
//   - jwt: requests carry "Authorization: Bearer <token>". Tokens are HS256
//     signed; the registered "sub" claim is the subject ID.
//   - none: the X-Subject-ID header is trusted as-is. For local development
//     and tests only.
//
// The resolved subject ID is stored in the request context and read back
// with SubjectFromContext. Authorization (is this subject a party of that
// relationship?) is decided by the mentorship service, not here.
package auth
