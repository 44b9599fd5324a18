// MentorMatch - Mentorship Matching and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mentormatch

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/mentormatch/internal/config"
	"github.com/tomtom215/mentormatch/internal/logging"
	"github.com/tomtom215/mentormatch/internal/metrics"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet; the default logger writes JSON to stderr.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingConfig())
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("store_backend", cfg.Store.Backend).
		Str("events_backend", cfg.Events.Backend).
		Msg("Starting MentorMatch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize application")
	}

	code := 0
	if err := serve(ctx, app); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
		code = 1
	}

	if err := app.Close(); err != nil {
		logging.Error().Err(err).Msg("Error during shutdown")
		code = 1
	}
	logging.Info().Msg("MentorMatch stopped")
	stop()
	os.Exit(code) //nolint:gocritic // stop already called
}

// serve runs the supervisor tree until ctx is canceled.
func serve(ctx context.Context, app *application) error {
	tree, err := app.supervise(logging.NewSlogLogger())
	if err != nil {
		return err
	}

	logging.Info().Str("addr", app.server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	if unstopped, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
