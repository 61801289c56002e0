package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gridboard/mobile-core/internal/logger"
)

type sessionCacheRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionCacheRepository constructs the SQLite-backed [SessionCache].
func NewSessionCacheRepository(db *DB, log *logger.Logger) SessionCache {
	return &sessionCacheRepository{db: db, logger: log}
}

// Get implements [SessionCache].
func (r *sessionCacheRepository) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := r.db.QueryRowContext(ctx, getCacheEntry, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("get cache entry %q: %w", key, err)
	}

	return value, nil
}

// Set implements [SessionCache]. The upsert is a single statement, so the
// write is atomic per key.
func (r *sessionCacheRepository) Set(ctx context.Context, key string, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertCacheEntry, key, value); err != nil {
		r.logger.Err(err).Str("key", key).Msg("cache write failed")
		return fmt.Errorf("set cache entry %q: %w", key, err)
	}

	return nil
}

// Remove implements [SessionCache].
func (r *sessionCacheRepository) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteCacheEntry, key); err != nil {
		r.logger.Err(err).Str("key", key).Msg("cache delete failed")
		return fmt.Errorf("remove cache entry %q: %w", key, err)
	}

	return nil
}
