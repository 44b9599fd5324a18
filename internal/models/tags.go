// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package models

import "strings"

// NormalizeTags trims each tag, drops empties and removes case-insensitive
// duplicates. The first spelling of a tag wins and order is preserved.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// TagSet builds a lower-cased lookup set from tags.
func TagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// SharedTags returns the tags of a that also appear in b, compared case-insensitively.
func SharedTags(a, b []string) []string {
	bs := TagSet(b)
	var shared []string
	for _, t := range NormalizeTags(a) {
		if _, ok := bs[strings.ToLower(t)]; ok {
			shared = append(shared, t)
		}
	}
	return shared
}
