// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

/*
Package middleware provides the HTTP infrastructure middleware shared by
every route: request ID propagation and Prometheus instrumentation.

Both are chi-compatible (func(http.Handler) http.Handler):

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

Authentication lives in the auth package; CORS and rate limiting come from
go-chi/cors and go-chi/httprate and are assembled by the api package.
*/
package middleware
