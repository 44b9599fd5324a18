// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

/*
Package recommend scores and ranks community content.

# Recommendation Types

Content-anchored types take a content item as subject and score every other
item against it on four factors: domain match, tag overlap (shared tags
divided by the larger tag set), complexity proximity and quality. Each type
has its own weight table, complexity rule and admission threshold:

	Type           Domain  Tags  Complexity  Quality  Threshold  Limit
	related        0.30    0.40  0.15        0.15     0.30       5
	next_steps     0.25    0.30  0.35        0.10     0.35       5
	prerequisites  0.25    0.30  0.35        0.10     0.35       5
	examples       0.30    0.35  0.15        0.20     0.30       5

Personalized recommendations take a user as subject. The user's context
(see package profile) is scored against each item on interest overlap (0.40),
focus match (0.25), complexity preference (0.20) and quality (0.15), with an
admission threshold of 0.40. Items the user interacted with during the last
seven days are never recommended.

Trending uses an additive accumulator on a [0,2] scale: engagement velocity
(up to 1.0), engagement depth (up to 0.4), freshness (up to 0.3) and quality
(up to 0.3). Items below 0.30 are dropped.

# Usage

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
	if err != nil {
	    return err
	}
	engine.SetDataProvider(store)

	resp, err := engine.Recommend(ctx, recommend.Request{
	    SubjectID: "video-42",
	    Type:      recommend.TypeNextSteps,
	})

Scoring is pure: the engine loads records through the DataProvider and
then works only on in-memory snapshots. Equal scores are ordered by content
ID ascending.
*/
package recommend
