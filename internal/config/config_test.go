// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9990", cfg.HTTP.Addr)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CONDUIT_HTTP_ADDR", ":9191")
	t.Setenv("CONDUIT_LOG_LEVEL", "debug")
	t.Setenv("CONDUIT_LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9191", cfg.HTTP.Addr)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestValidate_RejectsBadAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.HTTP.Addr = "not-an-address"
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsMissingLeadingSlash(t *testing.T) {
	cfg := defaultConfig()
	cfg.HTTP.MetricsPath = "metrics"
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Log.Level = "verbose"
	require.Error(t, cfg.Validate())
}

func TestFindConfigFile_PrefersEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/custom.yaml"
	require.NoError(t, os.WriteFile(path, []byte("http:\n  addr: \":1234\"\n"), 0o600))

	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":1234", cfg.HTTP.Addr)
}
