// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mentormatch/config.yaml",
	"/etc/mentormatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Defaults returns the built-in defaults applied before any file or
// environment layer.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			AuthMode:        "jwt",
			JWTSecret:       "",
			JWTIssuer:       "mentormatch",
			TokenTTL:        24 * time.Hour,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Store: StoreConfig{
			Backend:     "memory",
			Path:        "/data/mentormatch",
			Compression: true,
			GCInterval:  10 * time.Minute,
			GCRatio:     0.5,
		},
		Events: EventsConfig{
			Backend:                    "gochannel",
			Topic:                      "mentormatch.relationships",
			NATSURL:                    "nats://127.0.0.1:4222",
			QueueGroup:                 "mentormatch-audit",
			MaxReconnects:              -1,
			ReconnectWait:              2 * time.Second,
			AuditEnabled:               true,
			BreakerFailureThreshold:    5,
			BreakerTimeout:             30 * time.Second,
			RouterRetryCount:           3,
			RouterRetryInitialInterval: 100 * time.Millisecond,
			RouterCloseTimeout:         10 * time.Second,
		},
		Matching: MatchingConfig{
			DefaultLimit: 5,
			MaxLimit:     50,
			Threshold:    0,
			Weights: MatchingWeights{
				Expertise:     0.40,
				Experience:    0.25,
				Communication: 0.20,
				Availability:  0.10,
				Cultural:      0.05,
			},
		},
		Recommend: RecommendConfig{
			MaxLimit:                  50,
			HistoryWindow:             30 * 24 * time.Hour,
			PersonalizedExcludeWindow: 7 * 24 * time.Hour,
			TrendingWindow:            7 * 24 * time.Hour,
			TrendingThreshold:         0.30,
			TrendingDefaultLimit:      10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration from defaults, an optional YAML file and the
// environment, then validates it. Precedence: ENV > file > defaults.
func Load() (*Config, error) {
	k, err := load()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func load() (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, JWT_SECRET -> security.jwt_secret
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	return k, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"token_ttl":           "security.token_ttl",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Store
	"store_backend":     "store.backend",
	"store_path":        "store.path",
	"store_in_memory":   "store.in_memory",
	"store_sync_writes": "store.sync_writes",
	"store_compression": "store.compression",
	"store_gc_interval": "store.gc_interval",
	"store_gc_ratio":    "store.gc_ratio",
	"seed_file":         "store.seed_file",

	// Events
	"events_backend":              "events.backend",
	"events_topic":                "events.topic",
	"nats_url":                    "events.nats_url",
	"nats_jetstream":              "events.jetstream",
	"nats_queue_group":            "events.queue_group",
	"nats_max_reconnects":         "events.max_reconnects",
	"nats_reconnect_wait":         "events.reconnect_wait",
	"events_audit_enabled":        "events.audit_enabled",
	"events_breaker_threshold":    "events.breaker_failure_threshold",
	"events_breaker_timeout":      "events.breaker_timeout",
	"events_router_retry_count":   "events.router_retry_count",
	"events_router_retry_delay":   "events.router_retry_initial_interval",
	"events_router_close_timeout": "events.router_close_timeout",

	// Matching
	"matching_default_limit":        "matching.default_limit",
	"matching_max_limit":            "matching.max_limit",
	"matching_threshold":            "matching.threshold",
	"matching_weight_expertise":     "matching.weights.expertise",
	"matching_weight_experience":    "matching.weights.experience",
	"matching_weight_communication": "matching.weights.communication",
	"matching_weight_availability":  "matching.weights.availability",
	"matching_weight_cultural":      "matching.weights.cultural",

	// Recommend
	"recommend_max_limit":                   "recommend.max_limit",
	"recommend_history_window":              "recommend.history_window",
	"recommend_personalized_exclude_window": "recommend.personalized_exclude_window",
	"recommend_trending_window":             "recommend.trending_window",
	"recommend_trending_threshold":          "recommend.trending_threshold",
	"recommend_trending_default_limit":      "recommend.trending_default_limit",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to its koanf path. Unknown
// variables map to "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
