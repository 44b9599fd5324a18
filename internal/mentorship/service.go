// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package mentorship

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/logging"
	"github.com/tomtom215/mentormatch/internal/metrics"
	"github.com/tomtom215/mentormatch/internal/models"
)

// Repository is the data layer the service reads and writes through.
// Implementations return errors wrapping models.ErrNotFound for unknown IDs
// and models.ErrConflict when CreateRelationship would duplicate a
// non-ended pair.
type Repository interface {
	GetSubject(ctx context.Context, id string) (*models.Subject, error)

	// ListCandidates returns every subject able to act in role, including
	// subjects whose role is both.
	ListCandidates(ctx context.Context, role models.Role) ([]models.Subject, error)

	GetRelationship(ctx context.Context, id string) (*models.Relationship, error)
	ListRelationships(ctx context.Context, filter models.RelationshipFilter) ([]models.Relationship, error)
	CreateRelationship(ctx context.Context, rel *models.Relationship) error
	UpdateRelationship(ctx context.Context, rel *models.Relationship) error
	DeleteRelationship(ctx context.Context, id string) error
}

// EventPublisher receives relationship lifecycle notifications.
type EventPublisher interface {
	PublishRelationship(ctx context.Context, eventType string, rel *models.Relationship) error
}

// Relationship event types.
const (
	EventRelationshipCreated = "relationship.created"
	EventRelationshipDeleted = "relationship.deleted"
)

// EventTypeForAction returns the event type emitted after action succeeds.
func EventTypeForAction(a Action) string {
	return "relationship." + string(a)
}

// Constraints narrow a match search.
type Constraints struct {
	Limit   int
	Exclude []string
}

// Service finds matches and drives relationships. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	repo      Repository
	publisher EventPublisher
	config    *Config
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string

	// activationMu serializes the capacity check and write of activations.
	activationMu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the lifecycle event publisher.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides relationship ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a matching service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(repo Repository, cfg *Config, logger zerolog.Logger, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Service{
		repo:   repo,
		config: cfg,
		logger: logger.With().Str("component", "mentorship").Logger(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FindMentorMatches ranks mentors for a mentee subject.
func (s *Service) FindMentorMatches(ctx context.Context, subjectID string, c Constraints) ([]models.MatchResult, error) {
	return s.findMatches(ctx, subjectID, FindMentors, c)
}

// FindMenteeMatches ranks mentees for a mentor subject. A mentor at capacity
// gets an empty list.
func (s *Service) FindMenteeMatches(ctx context.Context, subjectID string, c Constraints) ([]models.MatchResult, error) {
	return s.findMatches(ctx, subjectID, FindMentees, c)
}

func (s *Service) findMatches(ctx context.Context, subjectID string, intent Intent, c Constraints) (results []models.MatchResult, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordMatchRequest(intent.String(), len(results), time.Since(start), err)
	}()

	subject, err := s.repo.GetSubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load subject %s: %w", subjectID, err)
	}

	candidateRole := models.RoleMentor
	if intent == FindMentors && !subject.Role.CanBeMentored() {
		return nil, &RoleError{SubjectID: subject.ID, Role: subject.Role, Want: models.RoleMentee}
	}
	if intent == FindMentees {
		if !subject.Role.CanMentor() {
			return nil, &RoleError{SubjectID: subject.ID, Role: subject.Role, Want: models.RoleMentor}
		}
		candidateRole = models.RoleMentee
	}

	pool, err := s.repo.ListCandidates(ctx, candidateRole)
	if err != nil {
		return nil, fmt.Errorf("list %s candidates: %w", candidateRole, err)
	}

	rels, err := s.repo.ListRelationships(ctx, models.RelationshipFilter{Statuses: models.NonEndedStatuses()})
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	load := BuildLoad(subject.ID, rels)

	ranked := Rank(subject, pool, intent, load, RankOptions{
		Limit:     s.config.limit(c.Limit),
		Exclude:   c.Exclude,
		Weights:   s.config.Weights,
		Threshold: s.config.Threshold,
	})
	results = Decorate(subject, ranked, intent, load)

	for i := range results {
		metrics.ObserveCompatibility(results[i].Score)
	}

	logging.Ctx(ctx).Debug().
		Str("component", "mentorship").
		Str("intent", intent.String()).
		Int("pool", len(pool)).
		Int("returned", len(results)).
		Msg("match search complete")

	return results, nil
}

// CreateRelationship opens a pending relationship between mentor and mentee.
// An empty structure is replaced by a suggested one; a partial structure is
// completed from the suggestion.
func (s *Service) CreateRelationship(ctx context.Context, mentorID, menteeID string, structure *models.Structure) (*models.Relationship, error) {
	if mentorID == menteeID {
		return nil, ErrSelfMatch
	}

	mentor, err := s.repo.GetSubject(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("load mentor %s: %w", mentorID, err)
	}
	mentee, err := s.repo.GetSubject(ctx, menteeID)
	if err != nil {
		return nil, fmt.Errorf("load mentee %s: %w", menteeID, err)
	}
	if !mentor.Role.CanMentor() {
		return nil, &RoleError{SubjectID: mentor.ID, Role: mentor.Role, Want: models.RoleMentor}
	}
	if !mentee.Role.CanBeMentored() {
		return nil, &RoleError{SubjectID: mentee.ID, Role: mentee.Role, Want: models.RoleMentee}
	}

	mentorRels, err := s.repo.ListRelationships(ctx, models.RelationshipFilter{SubjectID: mentorID})
	if err != nil {
		return nil, fmt.Errorf("list mentor relationships: %w", err)
	}
	if existing := findBlocking(mentorRels, mentorID, menteeID); existing != nil {
		return nil, &DuplicateRelationshipError{Existing: existing}
	}

	active := 0
	for i := range mentorRels {
		if mentorRels[i].MentorID == mentorID && mentorRels[i].Status == models.StatusActive {
			active++
		}
	}

	suggested := SuggestStructure(mentor, mentee, active)
	if !structure.IsZero() {
		suggested = mergeStructure(suggested, structure)
	}

	now := s.now()
	rel := &models.Relationship{
		ID:         s.newID(),
		MentorID:   mentorID,
		MenteeID:   menteeID,
		Status:     models.StatusPending,
		Structure:  suggested,
		MatchScore: Score(mentor, mentee, s.config.Weights).Score,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.CreateRelationship(ctx, rel); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, s.duplicateAfterConflict(ctx, mentorID, menteeID, err)
		}
		return nil, fmt.Errorf("create relationship: %w", err)
	}

	logging.Ctx(ctx).Info().
		Str("component", "mentorship").
		Str("relationship_id", rel.ID).
		Str("mentor_id", mentorID).
		Str("mentee_id", menteeID).
		Float64("match_score", rel.MatchScore).
		Msg("relationship requested")

	s.publish(ctx, EventRelationshipCreated, rel)
	return rel, nil
}

// duplicateAfterConflict resolves a store-level conflict (a concurrent
// create won the race) into a DuplicateRelationshipError.
func (s *Service) duplicateAfterConflict(ctx context.Context, mentorID, menteeID string, cause error) error {
	rels, err := s.repo.ListRelationships(ctx, models.RelationshipFilter{SubjectID: mentorID})
	if err != nil {
		return fmt.Errorf("create relationship: %w", cause)
	}
	if existing := findBlocking(rels, mentorID, menteeID); existing != nil {
		return &DuplicateRelationshipError{Existing: existing}
	}
	return fmt.Errorf("create relationship: %w", cause)
}

func findBlocking(rels []models.Relationship, mentorID, menteeID string) *models.Relationship {
	for i := range rels {
		r := rels[i]
		if r.MentorID == mentorID && r.MenteeID == menteeID && r.Blocks() {
			return &r
		}
	}
	return nil
}

// GetRelationship returns a relationship the requester is a party of.
func (s *Service) GetRelationship(ctx context.Context, requesterID, relationshipID string) (*models.Relationship, error) {
	rel, err := s.repo.GetRelationship(ctx, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("load relationship %s: %w", relationshipID, err)
	}
	if !rel.HasParty(requesterID) {
		return nil, ErrUnauthorized
	}
	return rel, nil
}

// ListRelationships returns the requester's relationships, optionally
// restricted to statuses.
func (s *Service) ListRelationships(ctx context.Context, requesterID string, statuses []models.RelationshipStatus) ([]models.Relationship, error) {
	rels, err := s.repo.ListRelationships(ctx, models.RelationshipFilter{SubjectID: requesterID, Statuses: statuses})
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return rels, nil
}

// ApplyAction applies a lifecycle action on behalf of requesterID, who must
// be the mentor or the mentee. Accepting or resuming re-checks mentor
// capacity and the single active mentorship of the mentee.
func (s *Service) ApplyAction(ctx context.Context, requesterID, relationshipID string, req ActionRequest) (rel *models.Relationship, err error) {
	defer func() { metrics.RecordTransition(string(req.Action), err) }()

	current, err := s.repo.GetRelationship(ctx, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("load relationship %s: %w", relationshipID, err)
	}
	if !current.HasParty(requesterID) {
		return nil, ErrUnauthorized
	}

	next, err := Transition(current, req, s.now())
	if err != nil {
		return nil, err
	}

	if next.Status == models.StatusActive && current.Status != models.StatusActive {
		err = s.activate(ctx, current, next)
	} else {
		err = s.update(ctx, next)
	}
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Str("component", "mentorship").
		Str("relationship_id", next.ID).
		Str("action", string(req.Action)).
		Str("from", string(current.Status)).
		Str("to", string(next.Status)).
		Msg("relationship transitioned")

	s.publish(ctx, EventTypeForAction(req.Action), next)
	return next, nil
}

func (s *Service) update(ctx context.Context, rel *models.Relationship) error {
	if err := s.repo.UpdateRelationship(ctx, rel); err != nil {
		return fmt.Errorf("update relationship %s: %w", rel.ID, err)
	}
	return nil
}

// activate re-checks capacity and writes next while holding activationMu,
// so concurrent accepts within this process cannot overfill a mentor.
// Instances sharing a store are not coordinated.
func (s *Service) activate(ctx context.Context, current, next *models.Relationship) error {
	s.activationMu.Lock()
	defer s.activationMu.Unlock()

	if err := s.checkActivation(ctx, current); err != nil {
		return err
	}
	return s.update(ctx, next)
}

// checkActivation enforces mentor capacity and the one-active-mentorship rule
// for the mentee before a relationship becomes active.
func (s *Service) checkActivation(ctx context.Context, rel *models.Relationship) error {
	active, err := s.repo.ListRelationships(ctx, models.RelationshipFilter{Statuses: []models.RelationshipStatus{models.StatusActive}})
	if err != nil {
		return fmt.Errorf("list active relationships: %w", err)
	}
	load := BuildLoad("", active)

	if load.ActiveAsMentee[rel.MenteeID] >= 1 {
		return fmt.Errorf("%w: mentee %s already has an active mentorship", ErrCapacityReached, rel.MenteeID)
	}

	mentor, err := s.repo.GetSubject(ctx, rel.MentorID)
	if err != nil {
		return fmt.Errorf("load mentor %s: %w", rel.MentorID, err)
	}
	if load.ActiveAsMentor[mentor.ID] >= Capacity(mentor) {
		return fmt.Errorf("%w: mentor %s is at capacity", ErrCapacityReached, mentor.ID)
	}
	return nil
}

// DeleteRelationship removes a relationship the requester is a party of.
func (s *Service) DeleteRelationship(ctx context.Context, requesterID, relationshipID string) error {
	rel, err := s.GetRelationship(ctx, requesterID, relationshipID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteRelationship(ctx, relationshipID); err != nil {
		return fmt.Errorf("delete relationship %s: %w", relationshipID, err)
	}
	s.publish(ctx, EventRelationshipDeleted, rel)
	return nil
}

// publish notifies the publisher. Failures are logged and counted; they never
// fail the operation that already committed.
func (s *Service) publish(ctx context.Context, eventType string, rel *models.Relationship) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishRelationship(ctx, eventType, rel); err != nil {
		s.logger.Warn().Err(err).
			Str("event_type", eventType).
			Str("relationship_id", rel.ID).
			Msg("failed to publish relationship event")
	}
}
