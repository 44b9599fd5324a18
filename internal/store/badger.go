// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/metrics"
	"github.com/tomtom215/mentormatch/internal/models"
)

// BadgerStore implements Store on BadgerDB.
//
// Key layout:
//
//	subject:<id>                         -> Subject JSON
//	content:<id>                         -> ContentItem JSON
//	interaction:<unix-nanos>:<uuid>      -> Interaction JSON
//	relationship:<id>                    -> Relationship JSON
//	pair:<mentor>:<mentee>               -> relationship ID (non-ended only)
//
// Interaction keys carry a zero-padded timestamp so a time range is a
// prefix seek.
type BadgerStore struct {
	db      *badger.DB
	gcRatio float64
	logger  zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// OpenBadger opens a BadgerDB-backed store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadger(cfg Config, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	return NewBadgerStore(db, cfg.GCRatio, logger), nil
}

// NewBadgerStore wraps an open database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerStore(db *badger.DB, gcRatio float64, logger zerolog.Logger) *BadgerStore {
	if gcRatio <= 0 || gcRatio >= 1 {
		gcRatio = 0.5
	}
	return &BadgerStore{db: db, gcRatio: gcRatio, logger: logger}
}

// PutSubject stores a subject as JSON under its subject key.
func (s *BadgerStore) PutSubject(_ context.Context, subject *models.Subject) error {
	defer observe(BackendBadger, "put_subject", time.Now())
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, subjectPrefix+subject.ID, subject)
	})
}

// GetSubject loads a subject or returns models.ErrNotFound.
func (s *BadgerStore) GetSubject(_ context.Context, id string) (*models.Subject, error) {
	defer observe(BackendBadger, "get_subject", time.Now())
	var subject models.Subject
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, subjectPrefix+id, &subject)
	})
	if err != nil {
		return nil, fmt.Errorf("subject %s: %w", id, err)
	}
	return &subject, nil
}

// ListCandidates scans the subject prefix for subjects able to act as role.
func (s *BadgerStore) ListCandidates(_ context.Context, role models.Role) ([]models.Subject, error) {
	defer observe(BackendBadger, "list_candidates", time.Now())
	out := make([]models.Subject, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		return iterateJSON(txn, subjectPrefix, nil, func(subject *models.Subject) bool {
			if canActAs(subject.Role, role) {
				out = append(out, *subject)
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return out, nil
}

// PutContent stores a content item as JSON.
func (s *BadgerStore) PutContent(_ context.Context, item *models.ContentItem) error {
	defer observe(BackendBadger, "put_content", time.Now())
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, contentPrefix+item.ID, item)
	})
}

// GetContent loads a content item or returns models.ErrNotFound.
func (s *BadgerStore) GetContent(_ context.Context, id string) (*models.ContentItem, error) {
	defer observe(BackendBadger, "get_content", time.Now())
	var item models.ContentItem
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, contentPrefix+id, &item)
	})
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", id, err)
	}
	return &item, nil
}

// ListContent scans every content item.
func (s *BadgerStore) ListContent(_ context.Context) ([]models.ContentItem, error) {
	defer observe(BackendBadger, "list_content", time.Now())
	out := make([]models.ContentItem, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		return iterateJSON(txn, contentPrefix, nil, func(item *models.ContentItem) bool {
			out = append(out, *item)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	return out, nil
}

// RecordInteraction appends an interaction under a time-ordered key.
func (s *BadgerStore) RecordInteraction(_ context.Context, interaction *models.Interaction) error {
	defer observe(BackendBadger, "record_interaction", time.Now())
	in := *interaction
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}
	key := interactionKey(in.Timestamp) + ":" + uuid.New().String()
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, key, &in)
	})
}

// ListInteractions seeks to since and returns matching interactions in
// key order. An empty userID matches every user.
func (s *BadgerStore) ListInteractions(_ context.Context, userID string, since time.Time) ([]models.Interaction, error) {
	defer observe(BackendBadger, "list_interactions", time.Now())
	var out []models.Interaction
	err := s.db.View(func(txn *badger.Txn) error {
		return iterateJSON(txn, interactionPrefix, []byte(interactionKey(since)), func(in *models.Interaction) bool {
			if userID == "" || in.UserID == userID {
				out = append(out, *in)
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return out, nil
}

// GetRelationship loads a relationship or returns models.ErrNotFound.
func (s *BadgerStore) GetRelationship(_ context.Context, id string) (*models.Relationship, error) {
	defer observe(BackendBadger, "get_relationship", time.Now())
	var rel models.Relationship
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, relationshipPrefix+id, &rel)
	})
	if err != nil {
		return nil, fmt.Errorf("relationship %s: %w", id, err)
	}
	return &rel, nil
}

// ListRelationships scans relationships and applies filter.
func (s *BadgerStore) ListRelationships(_ context.Context, filter models.RelationshipFilter) ([]models.Relationship, error) {
	defer observe(BackendBadger, "list_relationships", time.Now())
	out := make([]models.Relationship, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		return iterateJSON(txn, relationshipPrefix, nil, func(rel *models.Relationship) bool {
			if filter.Matches(rel) {
				out = append(out, *rel)
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	sortRelationships(out)
	return out, nil
}

// CreateRelationship stores rel. The pair index is checked and written in the
// same transaction; a concurrent writer loses with badger.ErrConflict, which
// is reported as models.ErrConflict.
func (s *BadgerStore) CreateRelationship(_ context.Context, rel *models.Relationship) error {
	defer observe(BackendBadger, "create_relationship", time.Now())
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(relationshipPrefix + rel.ID))
		switch {
		case err == nil:
			return fmt.Errorf("relationship %s already exists: %w", rel.ID, models.ErrConflict)
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		if rel.Blocks() {
			key := []byte(pairKey(rel.MentorID, rel.MenteeID))
			holder, err := getString(txn, key)
			switch {
			case err == nil:
				return fmt.Errorf("pair already linked by %s: %w", holder, models.ErrConflict)
			case !errors.Is(err, models.ErrNotFound):
				return err
			}
			if err := txn.Set(key, []byte(rel.ID)); err != nil {
				return fmt.Errorf("set pair index: %w", err)
			}
		}
		return setJSON(txn, relationshipPrefix+rel.ID, rel)
	})
	return translateTxnError(err)
}

// UpdateRelationship replaces a relationship and moves its pair index entry
// in the same transaction.
func (s *BadgerStore) UpdateRelationship(_ context.Context, rel *models.Relationship) error {
	defer observe(BackendBadger, "update_relationship", time.Now())
	err := s.db.Update(func(txn *badger.Txn) error {
		var current models.Relationship
		if err := getJSON(txn, relationshipPrefix+rel.ID, &current); err != nil {
			return fmt.Errorf("relationship %s: %w", rel.ID, err)
		}
		if current.MentorID != rel.MentorID || current.MenteeID != rel.MenteeID {
			return fmt.Errorf("relationship %s parties are immutable: %w", rel.ID, models.ErrConflict)
		}

		key := []byte(pairKey(rel.MentorID, rel.MenteeID))
		holder, err := getString(txn, key)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		switch {
		case !rel.Blocks() && holder == rel.ID:
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete pair index: %w", err)
			}
		case rel.Blocks():
			if holder != "" && holder != rel.ID {
				return fmt.Errorf("pair already linked by %s: %w", holder, models.ErrConflict)
			}
			if err := txn.Set(key, []byte(rel.ID)); err != nil {
				return fmt.Errorf("set pair index: %w", err)
			}
		}
		return setJSON(txn, relationshipPrefix+rel.ID, rel)
	})
	return translateTxnError(err)
}

// DeleteRelationship removes a relationship and its pair index entry.
func (s *BadgerStore) DeleteRelationship(_ context.Context, id string) error {
	defer observe(BackendBadger, "delete_relationship", time.Now())
	err := s.db.Update(func(txn *badger.Txn) error {
		var rel models.Relationship
		if err := getJSON(txn, relationshipPrefix+id, &rel); err != nil {
			return fmt.Errorf("relationship %s: %w", id, err)
		}
		key := []byte(pairKey(rel.MentorID, rel.MenteeID))
		holder, err := getString(txn, key)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
		if holder == id {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete pair index: %w", err)
			}
		}
		if err := txn.Delete([]byte(relationshipPrefix + id)); err != nil {
			return fmt.Errorf("delete relationship: %w", err)
		}
		return nil
	})
	return translateTxnError(err)
}

// RunGC runs value log GC until nothing is left to rewrite.
func (s *BadgerStore) RunGC() error {
	if s.isClosed() {
		return ErrClosed
	}
	for {
		err := s.db.RunValueLogGC(s.gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			metrics.RecordStoreGC("noop")
			return nil
		}
		if err != nil {
			metrics.RecordStoreGC("error")
			return fmt.Errorf("run GC: %w", err)
		}
		metrics.RecordStoreGC("rewritten")
	}
}

// Ping returns ErrClosed once the store or the database is closed.
func (s *BadgerStore) Ping(_ context.Context) error {
	if s.isClosed() || s.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

// Close closes the database. Calling it twice is a no-op.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Info().Msg("badger store closed")
	return nil
}

func (s *BadgerStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// interactionKey returns the sortable key prefix for t.
func interactionKey(t time.Time) string {
	var nanos int64
	if t.After(time.Unix(0, 0)) {
		nanos = t.UnixNano()
	}
	return fmt.Sprintf("%s%020d", interactionPrefix, nanos)
}

func translateTxnError(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("concurrent relationship write: %w", models.ErrConflict)
	}
	return err
}

func setJSON(txn *badger.Txn, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := txn.Set([]byte(key), data); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// getJSON decodes the value at key into v. A missing key is models.ErrNotFound.
func getJSON(txn *badger.Txn, key string, v interface{}) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func getString(txn *badger.Txn, key []byte) (string, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", models.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// iterateJSON decodes every value under prefix, starting at seek when set.
// fn returns false to stop.
func iterateJSON[T any](txn *badger.Txn, prefix string, seek []byte, fn func(*T) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	p := []byte(prefix)
	if seek == nil {
		seek = p
	}
	for it.Seek(seek); it.ValidForPrefix(p); it.Next() {
		var v T
		err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
		if err != nil {
			return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		if !fn(&v) {
			return nil
		}
	}
	return nil
}
