package config

import (
	"fmt"
	"time"
)

// Client defaults applied by [GetClientConfig] when a value is not supplied
// by any configuration source.
const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultDSN            = "gridboard-client.db"
	DefaultRequestTimeout = 10 * time.Second
	DefaultRetryCount     = 3
	DefaultRetryBackoff   = 1 * time.Second
	DefaultProbeInterval  = 15 * time.Second
	DefaultProbeTimeout   = 3 * time.Second
)

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App App
	// Adapter contains the backend address, timeout and retry budget.
	Adapter Adapter
	// Storage contains local cache settings.
	Storage Storage
	// Watcher contains connectivity watcher settings.
	Watcher Watcher
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, fills in defaults for anything left unset,
// and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App:     cfg.App,
		Adapter: cfg.Adapter,
		Storage: cfg.Storage,
		Watcher: cfg.Watcher,
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = DefaultBaseURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.RetryCount <= 0 {
		cfg.Adapter.RetryCount = DefaultRetryCount
	}
	if cfg.Adapter.RetryBackoff <= 0 {
		cfg.Adapter.RetryBackoff = DefaultRetryBackoff
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Watcher.ProbeInterval <= 0 {
		cfg.Watcher.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Watcher.ProbeTimeout <= 0 {
		cfg.Watcher.ProbeTimeout = DefaultProbeTimeout
	}
}
