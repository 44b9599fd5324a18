// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mentormatch/internal/api"
	"github.com/tomtom215/mentormatch/internal/auth"
	"github.com/tomtom215/mentormatch/internal/config"
	"github.com/tomtom215/mentormatch/internal/events"
	"github.com/tomtom215/mentormatch/internal/mentorship"
	"github.com/tomtom215/mentormatch/internal/recommend"
	"github.com/tomtom215/mentormatch/internal/store"
	"github.com/tomtom215/mentormatch/internal/supervisor"
	"github.com/tomtom215/mentormatch/internal/supervisor/services"
)

// application holds every component built from the configuration.
type application struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   store.Store
	bus     *events.Bus // nil when the events backend is "none"
	auditor *events.Auditor
	service *mentorship.Service
	engine  *recommend.Engine
	handler http.Handler
	server  *http.Server
}

// newApplication wires the store, event bus, domain services and HTTP
// router. On error everything opened so far is closed again.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApplication(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (app *application, err error) {
	app = &application{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			if cerr := app.Close(); cerr != nil {
				logger.Error().Err(cerr).Msg("cleanup after failed startup")
			}
			app = nil
		}
	}()

	app.store, err = store.Open(cfg.StoreConfig(), logger.With().Str("component", "store").Logger())
	if err != nil {
		return app, fmt.Errorf("open store: %w", err)
	}
	logger.Info().Str("backend", cfg.Store.Backend).Msg("store opened")

	if cfg.Store.SeedFile != "" {
		if err = applySeed(ctx, app.store, cfg.Store.SeedFile, logger); err != nil {
			return app, err
		}
	}

	var opts []mentorship.Option
	eventsCfg := cfg.EventsConfig()
	if eventsCfg.Backend != events.BackendNone {
		app.bus, err = events.NewBus(eventsCfg, logger.With().Str("component", "events").Logger())
		if err != nil {
			return app, fmt.Errorf("create event bus: %w", err)
		}
		opts = append(opts, mentorship.WithPublisher(app.bus))
		if eventsCfg.AuditEnabled {
			app.auditor = events.NewAuditor(app.bus, logger)
		}
		logger.Info().
			Str("backend", string(eventsCfg.Backend)).
			Str("topic", eventsCfg.Topic).
			Bool("audit", eventsCfg.AuditEnabled).
			Msg("relationship events enabled")
	} else {
		logger.Info().Msg("relationship events disabled (EVENTS_BACKEND=none)")
	}

	app.service, err = mentorship.NewService(app.store, cfg.MatchingConfig(),
		logger.With().Str("component", "mentorship").Logger(), opts...)
	if err != nil {
		return app, fmt.Errorf("create mentorship service: %w", err)
	}

	app.engine, err = recommend.NewEngine(cfg.RecommendConfig(), logger.With().Str("component", "recommend").Logger())
	if err != nil {
		return app, fmt.Errorf("create recommendation engine: %w", err)
	}
	app.engine.SetDataProvider(app.store)

	authenticator, err := auth.NewAuthenticator(cfg.AuthConfig(), logger)
	if err != nil {
		return app, fmt.Errorf("create authenticator: %w", err)
	}
	if authenticator.Mode() == auth.ModeNone {
		logger.Warn().Msg("authentication is DISABLED (AUTH_MODE=none); subjects are taken from the X-Subject-ID header")
	}
	if cfg.Security.RateLimitDisabled {
		logger.Warn().Msg("rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	h, err := api.NewHandler(api.HandlerDeps{
		Service:      app.service,
		Recommender:  app.engine,
		Interactions: app.store,
		Store:        app.store,
		Logger:       logger.With().Str("component", "api").Logger(),
		Version:      version,
	})
	if err != nil {
		return app, fmt.Errorf("create API handler: %w", err)
	}

	app.handler = api.NewRouter(h, authenticator, api.NewChiMiddleware(chiMiddlewareConfig(cfg))).Setup()
	app.server = newHTTPServer(&cfg.Server, app.handler)
	return app, nil
}

func applySeed(ctx context.Context, s store.Store, path string, logger zerolog.Logger) error {
	seed, err := store.LoadSeedFile(path)
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}
	stats, err := store.ApplySeed(ctx, s, seed)
	if err != nil {
		return fmt.Errorf("apply seed file: %w", err)
	}
	logger.Info().
		Str("file", path).
		Int("subjects", stats.Subjects).
		Int("content", stats.Content).
		Int("interactions", stats.Interactions).
		Int("relationships", stats.Relationships).
		Int("skipped", stats.Skipped).
		Msg("seed data applied")
	return nil
}

// chiMiddlewareConfig maps the security section onto the CORS and rate
// limit middleware.
func chiMiddlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// supervise builds the supervisor tree for the long-lived services.
func (a *application) supervise(slogLogger *slog.Logger) (*supervisor.SupervisorTree, error) {
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return nil, err
	}

	if gc, ok := a.store.(services.GarbageCollector); ok && a.cfg.Store.GCInterval > 0 {
		tree.AddDataService(services.NewStoreGCService(gc, a.cfg.Store.GCInterval, a.logger))
		a.logger.Info().Dur("interval", a.cfg.Store.GCInterval).Msg("store GC service added to supervisor")
	}

	if a.auditor != nil {
		tree.AddMessagingService(a.auditor)
		a.logger.Info().Msg("event audit service added to supervisor")
	}

	tree.AddAPIService(services.NewHTTPServerService(a.server, a.cfg.Server.ShutdownTimeout, a.logger))
	return tree, nil
}

// Close releases the bus and the store. It is safe on a partly built
// application.
func (a *application) Close() error {
	var errs []error
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}
