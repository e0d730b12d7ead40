package testsupport

import (
	"context"
	"sync"
	"time"
)

// RecordingCache is an in-memory cache port that records every operation and
// can be told to fail, used to exercise the cache-aside protocol without a
// real backend. TTLs are recorded but never enforced.
type RecordingCache struct {
	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration

	Gets    []string
	Sets    []string
	Deletes []string

	// FailWith, when non-nil, is returned by every subsequent operation.
	FailWith error
}

// NewRecordingCache builds an empty recording cache.
func NewRecordingCache() *RecordingCache {
	return &RecordingCache{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

// Get implements the cache port.
func (c *RecordingCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets = append(c.Gets, key)
	if c.FailWith != nil {
		return "", false, c.FailWith
	}
	value, ok := c.entries[key]
	return value, ok, nil
}

// Set implements the cache port.
func (c *RecordingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sets = append(c.Sets, key)
	if c.FailWith != nil {
		return c.FailWith
	}
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

// Delete implements the cache port.
func (c *RecordingCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Deletes = append(c.Deletes, key)
	if c.FailWith != nil {
		return c.FailWith
	}
	delete(c.entries, key)
	delete(c.ttls, key)
	return nil
}

// Payload returns the stored payload for key and whether it exists.
func (c *RecordingCache) Payload(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

// TTL returns the TTL recorded for key.
func (c *RecordingCache) TTL(key string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key]
}

// Put seeds an entry directly, bypassing recording.
func (c *RecordingCache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Len returns the number of stored entries.
func (c *RecordingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
