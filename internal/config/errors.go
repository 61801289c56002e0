package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid adapter settings
	// (for example, missing base URL or non-positive request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty cache DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWatcherConfigs indicates invalid connectivity watcher
	// settings (for example, a zero probe interval).
	ErrInvalidWatcherConfigs = errors.New("invalid watcher configuration")
)
