// SPDX-License-Identifier: Apache-2.0

package store

const (
	upsertCacheEntry = `
		INSERT INTO session_cache (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`

	getCacheEntry = `
		SELECT value
		FROM session_cache
		WHERE key = $1;`

	deleteCacheEntry = `
		DELETE FROM session_cache
		WHERE key = $1;`
)
