// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/mentormatch/internal/auth"
	"github.com/tomtom215/mentormatch/internal/mentorship"
	"github.com/tomtom215/mentormatch/internal/models"
	"github.com/tomtom215/mentormatch/internal/validation"
)

// CreateRelationshipRequest is the body of POST /mentorship/relationships.
// The requester must be the mentor or the mentee.
type CreateRelationshipRequest struct {
	MentorID  string            `json:"mentor_id" validate:"required,max=128"`
	MenteeID  string            `json:"mentee_id" validate:"required,max=128"`
	Structure *models.Structure `json:"structure,omitempty"`
}

// matchQuery is the validated query of the match search endpoints.
type matchQuery struct {
	Limit   int      `json:"limit" validate:"min=0,max=100"`
	Exclude []string `json:"exclude" validate:"max=100"`
}

// FindMentors handles GET /mentorship/subjects/{subjectID}/mentors.
func (h *Handler) FindMentors(w http.ResponseWriter, r *http.Request) {
	h.findMatches(w, r, h.service.FindMentorMatches)
}

// FindMentees handles GET /mentorship/subjects/{subjectID}/mentees.
func (h *Handler) FindMentees(w http.ResponseWriter, r *http.Request) {
	h.findMatches(w, r, h.service.FindMenteeMatches)
}

type matchFunc func(ctx context.Context, subjectID string, c mentorship.Constraints) ([]models.MatchResult, error)

func (h *Handler) findMatches(w http.ResponseWriter, r *http.Request, find matchFunc) {
	start := time.Now()
	subjectID := chi.URLParam(r, "subjectID")
	if !h.requireSelf(w, r, subjectID) {
		return
	}

	limit, err := getIntParam(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}
	q := matchQuery{Limit: limit, Exclude: parseCommaSeparated(r.URL.Query().Get("exclude"))}
	if verr := validation.ValidateStruct(&q); verr != nil {
		respondValidationError(w, verr)
		return
	}

	results, err := find(r.Context(), subjectID, mentorship.Constraints{Limit: q.Limit, Exclude: q.Exclude})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, results, len(results), start)
}

// ListRelationships handles GET /mentorship/relationships?status=active,paused.
func (h *Handler) ListRelationships(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requester, _ := auth.SubjectFromContext(r.Context())

	var statuses []models.RelationshipStatus
	for _, s := range parseCommaSeparated(r.URL.Query().Get("status")) {
		status := models.RelationshipStatus(s)
		if !status.IsValid() {
			respondError(w, http.StatusBadRequest, validation.ErrorCode, "unknown relationship status: "+s, nil)
			return
		}
		statuses = append(statuses, status)
	}

	rels, err := h.service.ListRelationships(r.Context(), requester, statuses)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if rels == nil {
		rels = []models.Relationship{}
	}
	respondSuccess(w, http.StatusOK, rels, len(rels), start)
}

// CreateRelationship handles POST /mentorship/relationships.
func (h *Handler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requester, _ := auth.SubjectFromContext(r.Context())

	var req CreateRelationshipRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}
	if requester != req.MentorID && requester != req.MenteeID {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "requester must be the mentor or the mentee", nil)
		return
	}

	rel, err := h.service.CreateRelationship(r.Context(), req.MentorID, req.MenteeID, req.Structure)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, rel, 0, start)
}

// GetRelationship handles GET /mentorship/relationships/{relationshipID}.
func (h *Handler) GetRelationship(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requester, _ := auth.SubjectFromContext(r.Context())

	rel, err := h.service.GetRelationship(r.Context(), requester, chi.URLParam(r, "relationshipID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, rel, 0, start)
}

// ApplyAction handles POST /mentorship/relationships/{relationshipID}/actions.
func (h *Handler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requester, _ := auth.SubjectFromContext(r.Context())

	var req mentorship.ActionRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	rel, err := h.service.ApplyAction(r.Context(), requester, chi.URLParam(r, "relationshipID"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, rel, 0, start)
}

// DeleteRelationship handles DELETE /mentorship/relationships/{relationshipID}.
func (h *Handler) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requester, _ := auth.SubjectFromContext(r.Context())
	id := chi.URLParam(r, "relationshipID")

	if err := h.service.DeleteRelationship(r.Context(), requester, id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"deleted": id}, 0, start)
}

// requireSelf answers 403 unless the requester is subjectID.
func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request, subjectID string) bool {
	requester, _ := auth.SubjectFromContext(r.Context())
	if requester != subjectID {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "subjects may only query on their own behalf", nil)
		return false
	}
	return true
}
