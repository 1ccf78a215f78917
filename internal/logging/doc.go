// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

// Package logging provides the metrics daemon's structured logging: a
// global zerolog logger plus context helpers for threading a
// correlation_id/request_id pair through a request's log lines.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Msg("starting metrics server")
//	logging.Error().Err(err).Msg("scrape failed")
//
//	// Within an HTTP handler, after middleware.RequestID has run:
//	logging.Ctx(r.Context()).Info().Msg("handled scrape")
//
// # Configuration
//
// Config.Level accepts trace, debug, info, warn, error, fatal, panic, or
// disabled. Config.Format is json (production) or console (local
// development). See internal/config, which loads these from
// CONDUIT_LOG_LEVEL / CONDUIT_LOG_FORMAT / CONDUIT_LOG_CALLER.
//
// # Structured fields over formatting
//
//	logging.Info().Str("addr", addr).Msg("listening")  // preferred
//	logging.Info().Msgf("listening on %s", addr)        // avoid
//
// # Thread safety
//
// All exported functions are safe for concurrent use; the global logger is
// guarded by a sync.RWMutex across Init/SetLogger calls.
package logging
