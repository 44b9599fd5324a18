// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/mentormatch/internal/auth"
	"github.com/tomtom215/mentormatch/internal/middleware"
)

// Router wires handlers, authentication and middleware into a chi router.
type Router struct {
	handler       *Handler
	authenticator *auth.Authenticator
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil mw uses the default middleware config.
func NewRouter(handler *Handler, authenticator *auth.Authenticator, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		authenticator: authenticator,
		chiMiddleware: mw,
	}
}

// Setup builds the HTTP handler with all routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(router.authenticator.Require)

		r.Route("/mentorship", func(r chi.Router) {
			r.Get("/subjects/{subjectID}/mentors", router.handler.FindMentors)
			r.Get("/subjects/{subjectID}/mentees", router.handler.FindMentees)

			r.Get("/relationships", router.handler.ListRelationships)
			r.Post("/relationships", router.handler.CreateRelationship)
			r.Get("/relationships/{relationshipID}", router.handler.GetRelationship)
			r.Delete("/relationships/{relationshipID}", router.handler.DeleteRelationship)
			r.Post("/relationships/{relationshipID}/actions", router.handler.ApplyAction)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/trending", router.handler.Trending)
			r.Get("/{type}/{subjectID}", router.handler.Recommend)
		})

		r.Post("/interactions", router.handler.RecordInteraction)
	})

	return r
}
