// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/mentormatch/internal/models"
)

// MemoryStore implements Store with maps guarded by a RWMutex.
type MemoryStore struct {
	mu            sync.RWMutex
	subjects      map[string]models.Subject
	content       map[string]models.ContentItem
	interactions  []models.Interaction
	relationships map[string]*models.Relationship
	pairs         map[string]string // pairKey -> relationship ID, non-ended only
	closed        bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subjects:      make(map[string]models.Subject),
		content:       make(map[string]models.ContentItem),
		relationships: make(map[string]*models.Relationship),
		pairs:         make(map[string]string),
	}
}

// PutSubject inserts or replaces a subject.
func (m *MemoryStore) PutSubject(_ context.Context, subject *models.Subject) error {
	defer observe(BackendMemory, "put_subject", time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects[subject.ID] = *subject
	return nil
}

// GetSubject returns a copy of the subject or models.ErrNotFound.
func (m *MemoryStore) GetSubject(_ context.Context, id string) (*models.Subject, error) {
	defer observe(BackendMemory, "get_subject", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subjects[id]
	if !ok {
		return nil, fmt.Errorf("subject %s: %w", id, models.ErrNotFound)
	}
	return &s, nil
}

// ListCandidates returns the subjects able to act as role, ordered by ID.
func (m *MemoryStore) ListCandidates(_ context.Context, role models.Role) ([]models.Subject, error) {
	defer observe(BackendMemory, "list_candidates", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Subject, 0, len(m.subjects))
	for id := range m.subjects {
		if s := m.subjects[id]; canActAs(s.Role, role) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// PutContent inserts or replaces a content item.
func (m *MemoryStore) PutContent(_ context.Context, item *models.ContentItem) error {
	defer observe(BackendMemory, "put_content", time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[item.ID] = *item
	return nil
}

// GetContent returns a copy of the item or models.ErrNotFound.
func (m *MemoryStore) GetContent(_ context.Context, id string) (*models.ContentItem, error) {
	defer observe(BackendMemory, "get_content", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.content[id]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", id, models.ErrNotFound)
	}
	return &item, nil
}

// ListContent returns every content item, ordered by ID.
func (m *MemoryStore) ListContent(_ context.Context) ([]models.ContentItem, error) {
	defer observe(BackendMemory, "list_content", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ContentItem, 0, len(m.content))
	for id := range m.content {
		out = append(out, m.content[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RecordInteraction appends an interaction, stamping it with the current
// time when Timestamp is zero.
func (m *MemoryStore) RecordInteraction(_ context.Context, interaction *models.Interaction) error {
	defer observe(BackendMemory, "record_interaction", time.Now())
	in := *interaction
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactions = append(m.interactions, in)
	return nil
}

// ListInteractions returns interactions at or after since, oldest first.
// An empty userID matches every user.
func (m *MemoryStore) ListInteractions(_ context.Context, userID string, since time.Time) ([]models.Interaction, error) {
	defer observe(BackendMemory, "list_interactions", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Interaction
	for i := range m.interactions {
		in := m.interactions[i]
		if userID != "" && in.UserID != userID {
			continue
		}
		if in.Timestamp.Before(since) {
			continue
		}
		out = append(out, in)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// GetRelationship returns a copy of the relationship or models.ErrNotFound.
func (m *MemoryStore) GetRelationship(_ context.Context, id string) (*models.Relationship, error) {
	defer observe(BackendMemory, "get_relationship", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	rel, ok := m.relationships[id]
	if !ok {
		return nil, fmt.Errorf("relationship %s: %w", id, models.ErrNotFound)
	}
	return rel.Clone(), nil
}

// ListRelationships returns the relationships matching filter.
func (m *MemoryStore) ListRelationships(_ context.Context, filter models.RelationshipFilter) ([]models.Relationship, error) {
	defer observe(BackendMemory, "list_relationships", time.Now())
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Relationship, 0)
	for _, rel := range m.relationships {
		if filter.Matches(rel) {
			out = append(out, *rel.Clone())
		}
	}
	sortRelationships(out)
	return out, nil
}

// CreateRelationship stores rel. It fails with models.ErrConflict when the
// pair already has a non-ended relationship or the ID is taken.
func (m *MemoryStore) CreateRelationship(_ context.Context, rel *models.Relationship) error {
	defer observe(BackendMemory, "create_relationship", time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.relationships[rel.ID]; exists {
		return fmt.Errorf("relationship %s already exists: %w", rel.ID, models.ErrConflict)
	}
	key := pairKey(rel.MentorID, rel.MenteeID)
	if rel.Blocks() {
		if existing, taken := m.pairs[key]; taken {
			return fmt.Errorf("pair already linked by %s: %w", existing, models.ErrConflict)
		}
		m.pairs[key] = rel.ID
	}
	m.relationships[rel.ID] = rel.Clone()
	return nil
}

// UpdateRelationship replaces a stored relationship and keeps the pair
// index in step with its status.
func (m *MemoryStore) UpdateRelationship(_ context.Context, rel *models.Relationship) error {
	defer observe(BackendMemory, "update_relationship", time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.relationships[rel.ID]
	if !ok {
		return fmt.Errorf("relationship %s: %w", rel.ID, models.ErrNotFound)
	}
	if current.MentorID != rel.MentorID || current.MenteeID != rel.MenteeID {
		return fmt.Errorf("relationship %s parties are immutable: %w", rel.ID, models.ErrConflict)
	}
	key := pairKey(rel.MentorID, rel.MenteeID)
	switch {
	case !rel.Blocks() && m.pairs[key] == rel.ID:
		delete(m.pairs, key)
	case rel.Blocks():
		if holder, taken := m.pairs[key]; taken && holder != rel.ID {
			return fmt.Errorf("pair already linked by %s: %w", holder, models.ErrConflict)
		}
		m.pairs[key] = rel.ID
	}
	m.relationships[rel.ID] = rel.Clone()
	return nil
}

// DeleteRelationship removes a relationship and releases its pair.
func (m *MemoryStore) DeleteRelationship(_ context.Context, id string) error {
	defer observe(BackendMemory, "delete_relationship", time.Now())
	m.mu.Lock()
	defer m.mu.Unlock()
	rel, ok := m.relationships[id]
	if !ok {
		return fmt.Errorf("relationship %s: %w", id, models.ErrNotFound)
	}
	key := pairKey(rel.MentorID, rel.MenteeID)
	if m.pairs[key] == id {
		delete(m.pairs, key)
	}
	delete(m.relationships, id)
	return nil
}

// Ping reports ErrClosed after Close.
func (m *MemoryStore) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close marks the store closed. Data is discarded with the process.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
