// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the client version string.
	App App `envPrefix:"APP_"`

	// Adapter holds settings for the outbound HTTP transport: the backend
	// base URL, the per-attempt timeout and the retry budget.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local persistent cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Watcher holds configuration for the connectivity watcher.
	Watcher Watcher `envPrefix:"WATCHER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged after the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client
	// (e.g. "1.2.3"). Reported in the User-Agent of outbound requests.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// BaseURL is the backend base URL (e.g. "https://api.gridboard.app").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the per-attempt timeout for a single outbound
	// request (e.g. "10s"). Retries get a fresh timeout each attempt.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is the number of automatic retries after a failed attempt.
	// Only transport-level failures are retried; any HTTP response,
	// including non-2xx, is returned to the caller as-is.
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`

	// RetryBackoff is the constant wait between retry attempts (e.g. "1s").
	// Env: ADAPTER_RETRY_BACKOFF
	RetryBackoff time.Duration `env:"RETRY_BACKOFF"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite cache.
type DB struct {
	// DSN is the SQLite file path used for the durable session cache
	// (e.g. "gridboard-client.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Watcher holds configuration for the connectivity watcher.
type Watcher struct {
	// ProbeInterval defines how often the watcher probes the backend for
	// reachability (e.g. "15s").
	// Env: WATCHER_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ProbeTimeout bounds a single reachability probe (e.g. "3s").
	// Env: WATCHER_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
