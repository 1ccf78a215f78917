// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads and validates the configuration for the metrics
daemon.

# Configuration Sources

Configuration is assembled from three layered sources, in increasing order
of precedence:

  - Built-in defaults
  - An optional YAML config file (see ConfigPathEnvVar and DefaultConfigPaths)
  - Environment variables prefixed with CONDUIT_

# Environment Variables

	CONDUIT_HTTP_ADDR          - Listen address for the metrics HTTP server (default: :9990)
	CONDUIT_HTTP_METRICS_PATH  - Path the scrape endpoint is served on (default: /metrics)
	CONDUIT_LOG_LEVEL          - trace, debug, info, warn, error, fatal, panic, disabled (default: info)
	CONDUIT_LOG_FORMAT         - json or console (default: json)
	CONDUIT_LOG_CALLER         - true/false, include caller file:line (default: false)
	CONDUIT_CONFIG_FILE        - Explicit path to a YAML config file, overriding DefaultConfigPaths

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	srv := &http.Server{Addr: cfg.HTTP.Addr}

# Validation

Load calls Validate before returning: the HTTP address must parse as a
host:port pair, the metrics path must start with "/", and the log level and
format must be one of the recognized values.
*/
package config
