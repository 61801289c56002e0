package store

import (
	"context"
	"fmt"

	"github.com/gridboard/mobile-core/internal/config"
	"github.com/gridboard/mobile-core/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer. Currently it holds only
// [SessionCache]; additional repositories can be added here as the feature
// set grows.
type ClientStorages struct {
	// SessionCache is the SQLite-backed durable key/value store holding the
	// bearer token, the last confirmed user record and the tier catalog.
	SessionCache SessionCache
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path in cfg.DB.DSN, creating
//     the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to a fresh
//     session cache repository.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.Storage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		SessionCache: NewSessionCacheRepository(db, log),
	}, nil
}
