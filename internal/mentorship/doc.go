// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

/*
Package mentorship implements mentor and mentee matching and the mentorship
relationship lifecycle.

The package is split into a pure scoring core and a thin service around it:

  - Score computes the weighted compatibility of a mentor and a mentee
  - Rank filters a candidate pool, scores, thresholds, sorts and truncates
  - Decorate adds SuggestStructure and BuildInsights output to the top matches
  - Transition applies a lifecycle action to a relationship

None of these functions perform I/O or hold state; identical inputs always
produce identical output. Service loads records through a Repository, calls
the core and persists relationship changes.

# Compatibility Factors

	Factor                   Weight
	expertise / goals        0.40
	experience gap           0.25
	communication style      0.20
	availability             0.10  (AvailabilityOverlap, fixed 0.7)
	cultural considerations  0.05

# Ranking

Equal scores are ordered by candidate ID ascending so results are stable
regardless of the order the repository returned candidates in.
*/
package mentorship
