// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

// Package main is the MentorMatch server.
//
// MentorMatch ranks mentor and mentee candidates by compatibility, manages
// the mentorship relationship lifecycle and recommends learning content.
//
// # Startup
//
// Components are created in this order:
//
//  1. Configuration: defaults, config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog, with an slog bridge for suture and watermill
//  3. Store: in-memory or BadgerDB, optionally loaded from SEED_FILE
//  4. Events: Watermill GoChannel or NATS publisher for relationship events
//  5. Domain: mentorship service and recommendation engine
//  6. HTTP: chi router with auth, CORS, rate limiting and /metrics
//  7. Supervisor tree: HTTP server, badger GC and the event auditor
//
// # Example Usage
//
// Local development without tokens:
//
//	export AUTH_MODE=none
//	export SEED_FILE=./testdata/seed.json
//	./mentormatch
//
// Production with a durable store and NATS:
//
//	export ENVIRONMENT=production
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export STORE_BACKEND=badger
//	export STORE_PATH=/data/mentormatch
//	export EVENTS_BACKEND=nats
//	export NATS_URL=nats://nats:4222
//	./mentormatch
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains for up
// to SHUTDOWN_TIMEOUT, then the event bus and the store are closed.
package main
