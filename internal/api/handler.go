// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/mentorship"
	"github.com/tomtom215/mentormatch/internal/models"
	"github.com/tomtom215/mentormatch/internal/recommend"
)

// MentorshipService is the matching and relationship surface used by the
// handlers. It is implemented by *mentorship.Service.
type MentorshipService interface {
	FindMentorMatches(ctx context.Context, subjectID string, c mentorship.Constraints) ([]models.MatchResult, error)
	FindMenteeMatches(ctx context.Context, subjectID string, c mentorship.Constraints) ([]models.MatchResult, error)
	CreateRelationship(ctx context.Context, mentorID, menteeID string, structure *models.Structure) (*models.Relationship, error)
	GetRelationship(ctx context.Context, requesterID, relationshipID string) (*models.Relationship, error)
	ListRelationships(ctx context.Context, requesterID string, statuses []models.RelationshipStatus) ([]models.Relationship, error)
	ApplyAction(ctx context.Context, requesterID, relationshipID string, req mentorship.ActionRequest) (*models.Relationship, error)
	DeleteRelationship(ctx context.Context, requesterID, relationshipID string) error
}

// Recommender produces content recommendations. It is implemented by
// *recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
}

// InteractionRecorder stores engagement signals.
type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, interaction *models.Interaction) error
}

// HealthChecker reports whether a dependency can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler serves the API endpoints.
type Handler struct {
	service      MentorshipService
	recommender  Recommender
	interactions InteractionRecorder
	store        HealthChecker
	logger       zerolog.Logger
	version      string
	startTime    time.Time
	readyTimeout time.Duration
}

// HandlerDeps are the collaborators of a Handler.
type HandlerDeps struct {
	Service      MentorshipService
	Recommender  Recommender
	Interactions InteractionRecorder
	Store        HealthChecker
	Logger       zerolog.Logger
	Version      string
}

// NewHandler creates a handler. Service, Recommender, Interactions and Store
// are required.
func NewHandler(deps HandlerDeps) (*Handler, error) {
	switch {
	case deps.Service == nil:
		return nil, errors.New("mentorship service is required")
	case deps.Recommender == nil:
		return nil, errors.New("recommender is required")
	case deps.Interactions == nil:
		return nil, errors.New("interaction recorder is required")
	case deps.Store == nil:
		return nil, errors.New("store health checker is required")
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		service:      deps.Service,
		recommender:  deps.Recommender,
		interactions: deps.Interactions,
		store:        deps.Store,
		logger:       deps.Logger.With().Str("component", "api").Logger(),
		version:      version,
		startTime:    time.Now(),
		readyTimeout: 2 * time.Second,
	}, nil
}
