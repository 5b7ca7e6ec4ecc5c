// Package cache provides an explicit cache object injected where the service
// previously would have reached for package-level maps. The interface keeps
// the backing store pluggable; the in-memory backend is for single-instance
// deployments, multi-instance ones can substitute an external store.
package cache

import "time"

type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	// Increment bumps a counter key, creating it with the given ttl, and
	// returns the new count. Used by rate limiting.
	Increment(key string, ttl time.Duration) int64
}
