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
	"github.com/tomtom215/mentormatch/internal/logging"
	"github.com/tomtom215/mentormatch/internal/models"
	"github.com/tomtom215/mentormatch/internal/recommend"
	"github.com/tomtom215/mentormatch/internal/validation"
)

// recommendTimeout bounds one recommendation request.
const recommendTimeout = 10 * time.Second

// Recommend handles GET /recommendations/{type}/{subjectID}. Content-anchored
// types take a content ID; personalized takes the requester's own ID.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	recType := recommend.Type(chi.URLParam(r, "type"))
	subjectID := chi.URLParam(r, "subjectID")

	if recType == recommend.TypePersonalized && !h.requireSelf(w, r, subjectID) {
		return
	}
	h.recommend(w, r, recType, subjectID)
}

// Trending handles GET /recommendations/trending.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	h.recommend(w, r, recommend.TypeTrending, "")
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, recType recommend.Type, subjectID string) {
	start := time.Now()
	limit, err := getIntParam(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	resp, err := h.recommender.Recommend(ctx, recommend.Request{
		RequestID:  logging.RequestIDFromContext(r.Context()),
		SubjectID:  subjectID,
		Type:       recType,
		Limit:      limit,
		ExcludeIDs: parseCommaSeparated(r.URL.Query().Get("exclude")),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusOK, resp, len(resp.Items), start)
}

// RecordInteraction handles POST /interactions. Subjects may only record
// their own engagement.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requester, _ := auth.SubjectFromContext(r.Context())

	var in models.Interaction
	if err := decodeJSONBody(w, r, &in); err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}
	if in.UserID == "" {
		in.UserID = requester
	}
	if verr := validation.ValidateStruct(&in); verr != nil {
		respondValidationError(w, verr)
		return
	}
	if in.UserID != requester {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "subjects may only record their own interactions", nil)
		return
	}
	if in.Kind == "" {
		in.Kind = models.InteractionView
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	if err := h.interactions.RecordInteraction(r.Context(), &in); err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, http.StatusCreated, in, 0, start)
}
