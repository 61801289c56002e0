package store

import "errors"

// ErrCacheMiss is returned by [SessionCache.Get] when the requested key has
// never been written or has been removed.
var ErrCacheMiss = errors.New("cache entry not found")
