package cache

import (
	"context"
	"time"
)

// Port is the minimal key-value contract the persistence layer caches
// through. Implementations wrap a concrete transport (Redis, in-process) and
// surface transport failures as apperror.CacheUnavailable; callers decide
// whether such a failure is fatal for their operation.
type Port interface {
	// Get returns the payload stored at key. The boolean reports a hit; a
	// miss is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a payload at key with the given time-to-live. TTLs are
	// whole seconds.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Spec is the optional per-call cache configuration: where to cache and for
// how long. A nil *Spec means the operation goes straight to the backing
// store and never touches the cache.
type Spec struct {
	Key string
	TTL time.Duration
}

// NewSpec builds a Spec whose key is derived from the given segments.
func NewSpec(ttl time.Duration, segments ...any) *Spec {
	return &Spec{Key: Key(segments...), TTL: ttl}
}
