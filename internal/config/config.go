// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the environment variable that, if set, points at
// an explicit YAML config file.
const ConfigPathEnvVar = "CONDUIT_CONFIG_FILE"

// DefaultConfigPaths are searched in order when ConfigPathEnvVar is unset or
// names a file that does not exist.
var DefaultConfigPaths = []string{
	"./conduit.yaml",
	"/etc/conduit/conduit.yaml",
}

// Config holds everything the metrics daemon needs at startup.
type Config struct {
	HTTP HTTPConfig `koanf:"http"`
	Log  LogConfig  `koanf:"log"`
}

// HTTPConfig controls the scrape-serving HTTP listener.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	MetricsPath string `koanf:"metrics_path"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:        ":9990",
			MetricsPath: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds a Config using a three-layer koanf pipeline: built-in
// defaults, then an optional YAML file, then environment variables
// (prefix CONDUIT_), each layer overriding the last. The result is
// validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("CONDUIT_", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return cfg, nil
}

// envTransformFunc turns CONDUIT_HTTP_ADDR into http.addr, CONDUIT_LOG_LEVEL
// into log.level, CONDUIT_HTTP_METRICS_PATH into http.metrics_path, and so
// on: the provider passes the full variable name (prefix included), so it's
// stripped here before lowercasing and converting the first underscore (the
// section separator) to a koanf path separator.
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, "CONDUIT_")
	key = strings.ToLower(key)
	return strings.Replace(key, "_", ".", 1)
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr must not be empty")
	}
	if _, _, err := net.SplitHostPort(c.HTTP.Addr); err != nil {
		return fmt.Errorf("http.addr %q is not a valid address: %w", c.HTTP.Addr, err)
	}
	if !strings.HasPrefix(c.HTTP.MetricsPath, "/") {
		return fmt.Errorf("http.metrics_path must start with '/', got %q", c.HTTP.MetricsPath)
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("log.level %q is not a recognized level", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
