// SPDX-License-Identifier: Apache-2.0

package config

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 ||
		cfg.Adapter.RetryCount < 0 || cfg.Adapter.RetryBackoff <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Watcher.ProbeInterval <= 0 || cfg.Watcher.ProbeTimeout <= 0 {
		return ErrInvalidWatcherConfigs
	}

	return nil
}
