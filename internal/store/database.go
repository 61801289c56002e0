package store

import (
	"database/sql"

	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
