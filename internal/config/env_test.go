// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION": "1.2.3",

		"ADAPTER_BASE_URL":        "https://api.gridboard.app",
		"ADAPTER_REQUEST_TIMEOUT": "10s",
		"ADAPTER_RETRY_COUNT":     "5",
		"ADAPTER_RETRY_BACKOFF":   "2s",

		"STORAGE_DB_DSN": "/var/data/client.db",

		"WATCHER_PROBE_INTERVAL": "30s",
		"WATCHER_PROBE_TIMEOUT":  "3s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "https://api.gridboard.app", cfg.Adapter.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 5, cfg.Adapter.RetryCount)
	assert.Equal(t, 2*time.Second, cfg.Adapter.RetryBackoff)

	assert.Equal(t, "/var/data/client.db", cfg.Storage.DB.DSN)

	assert.Equal(t, 30*time.Second, cfg.Watcher.ProbeInterval)
	assert.Equal(t, 3*time.Second, cfg.Watcher.ProbeTimeout)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"ADAPTER_BASE_URL": "http://localhost:9999",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Adapter.BaseURL)
	assert.Zero(t, cfg.Adapter.RequestTimeout)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "not-a-duration"})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
}
