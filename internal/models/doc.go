// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

/*
Package models defines the value objects shared by the MentorMatch packages.

Model Categories:

1. Community records (owned by the external data layer):
  - Subject: a community member who may mentor, be mentored, or both
  - ContentItem: an article, video, newsletter issue or repository
  - Interaction: one engagement of a subject with a content item
  - Relationship: a mentor and mentee pairing with its lifecycle status

2. Scoring output:
  - MatchResult: a scored candidate with human-readable reasons
  - Structure and Insights: decorations attached to mentorship matches

3. API envelope:
  - APIResponse, Metadata and APIError wrap every HTTP response

Tag sets (interests, expertise, goals, tags) are compared as normalised sets.
NormalizeTags trims, drops empties and de-duplicates case-insensitively while
preserving first-seen order so results stay deterministic.
*/
package models
