// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/mentormatch/internal/models"
	"github.com/tomtom215/mentormatch/internal/validation"
)

// Seed is the document format of a seed file.
type Seed struct {
	Subjects      []models.Subject      `json:"subjects"`
	Content       []models.ContentItem  `json:"content"`
	Interactions  []models.Interaction  `json:"interactions"`
	Relationships []models.Relationship `json:"relationships"`
}

// SeedStats counts the records applied from a seed.
type SeedStats struct {
	Subjects      int
	Content       int
	Interactions  int
	Relationships int
	Skipped       int
}

// LoadSeedFile reads a JSON seed document from path.
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return DecodeSeed(f)
}

// DecodeSeed parses a JSON seed document. Unknown fields are rejected.
func DecodeSeed(r io.Reader) (*Seed, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &seed, nil
}

// ApplySeed validates and writes every record of seed into s. Invalid
// records fail the whole load; relationships whose pair is already linked
// are skipped so that re-applying a seed to a durable store is harmless.
func ApplySeed(ctx context.Context, s Store, seed *Seed) (SeedStats, error) {
	var stats SeedStats

	for i := range seed.Subjects {
		subject := &seed.Subjects[i]
		if verr := validation.ValidateStruct(subject); verr != nil {
			return stats, fmt.Errorf("subject %d (%s): %w", i, subject.ID, verr)
		}
		subject.Interests = models.NormalizeTags(subject.Interests)
		subject.Expertise = models.NormalizeTags(subject.Expertise)
		subject.Goals = models.NormalizeTags(subject.Goals)
		if err := s.PutSubject(ctx, subject); err != nil {
			return stats, err
		}
		stats.Subjects++
	}

	for i := range seed.Content {
		item := &seed.Content[i]
		if verr := validation.ValidateStruct(item); verr != nil {
			return stats, fmt.Errorf("content %d (%s): %w", i, item.ID, verr)
		}
		item.Tags = models.NormalizeTags(item.Tags)
		if err := s.PutContent(ctx, item); err != nil {
			return stats, err
		}
		stats.Content++
	}

	for i := range seed.Interactions {
		in := &seed.Interactions[i]
		if verr := validation.ValidateStruct(in); verr != nil {
			return stats, fmt.Errorf("interaction %d: %w", i, verr)
		}
		if err := s.RecordInteraction(ctx, in); err != nil {
			return stats, err
		}
		stats.Interactions++
	}

	for i := range seed.Relationships {
		rel := &seed.Relationships[i]
		if rel.ID == "" || rel.MentorID == "" || rel.MenteeID == "" || !rel.Status.IsValid() {
			return stats, fmt.Errorf("relationship %d: id, mentor_id, mentee_id and a valid status are required", i)
		}
		err := s.CreateRelationship(ctx, rel)
		if errors.Is(err, models.ErrConflict) {
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, err
		}
		stats.Relationships++
	}

	return stats, nil
}
