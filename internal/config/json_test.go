package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Durations in JSON may be strings like "10s" or raw nanoseconds.
	jsonBody := `{
		"app": { "version": "0.9.0" },
		"adapter": {
			"base_url": "https://api.gridboard.app",
			"request_timeout": "10s",
			"retry_count": 4,
			"retry_backoff": "500ms"
		},
		"storage": {
			"db": { "dsn": "/var/data/client.db" }
		},
		"watcher": {
			"probe_interval": "20s",
			"probe_timeout": "2s"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0.9.0", cfg.App.Version)
	assert.Equal(t, "https://api.gridboard.app", cfg.Adapter.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 4, cfg.Adapter.RetryCount)
	assert.Equal(t, 500*time.Millisecond, cfg.Adapter.RetryBackoff)
	assert.Equal(t, "/var/data/client.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 20*time.Second, cfg.Watcher.ProbeInterval)
	assert.Equal(t, 2*time.Second, cfg.Watcher.ProbeTimeout)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	require.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	_, err := parseJSON(p)
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"string form", `"1h"`, time.Hour},
		{"number form (ns)", `1000000000`, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
