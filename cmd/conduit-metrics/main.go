// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

// Command conduit-metrics runs the metrics daemon: it accepts proxy
// telemetry events and serves them as a Prometheus scrape endpoint.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sfroment/conduit/internal/config"
	"github.com/sfroment/conduit/internal/httpserver"
	"github.com/sfroment/conduit/internal/logging"
	"github.com/sfroment/conduit/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Caller:    cfg.Log.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, srv := telemetry.New(time.Now(), cfg.HTTP.MetricsPath)

	router := httpserver.New(srv)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logging.Info().Str("addr", cfg.HTTP.Addr).Str("path", cfg.HTTP.MetricsPath).Msg("starting metrics server")

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logging.Fatal().Err(err).Msg("metrics server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
