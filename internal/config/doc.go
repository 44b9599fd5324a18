// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

/*
Package config loads MentorMatch configuration.

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (Defaults)
 2. An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/mentormatch/config.yaml
 3. Environment variables (HTTP_PORT, JWT_SECRET, STORE_BACKEND, ...)

Example config.yaml:

	server:
	  port: 8080
	security:
	  auth_mode: jwt
	  jwt_secret: change-me-to-a-32-character-secret
	store:
	  backend: badger
	  path: /data/mentormatch
	events:
	  backend: nats
	  nats_url: nats://nats:4222
	matching:
	  weights:
	    expertise: 0.40
	    experience: 0.25
	    communication: 0.20
	    availability: 0.10
	    cultural: 0.05

Each section converts into the configuration type of the package it feeds
(StoreConfig, EventsConfig, MatchingConfig, ...), so component packages do
not depend on this one.
*/
package config
