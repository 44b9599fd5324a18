// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package store

import (
	"context"

	"github.com/tomtom215/mentormatch/internal/models"
)

// Writer ingests the records the scorers read. Subjects and content are
// upserted by ID; interactions are append-only.
type Writer interface {
	PutSubject(ctx context.Context, subject *models.Subject) error
	PutContent(ctx context.Context, item *models.ContentItem) error
	RecordInteraction(ctx context.Context, interaction *models.Interaction) error
}
