package cacheinfra

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the configuration for the in-process sturdyc cache backend.
type Config struct {
	// Capacity defines the maximum number of entries the cache can store.
	// Must be greater than 0.
	Capacity int

	// NumShards determines the number of cache shards for concurrent access.
	// Higher values improve concurrency but increase memory overhead.
	// Must be greater than 0.
	NumShards int

	// TTL is the time-to-live for cached entries. sturdyc applies one TTL
	// per client, so this is also the upper bound for per-call TTLs.
	// Must be greater than 0.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict when
	// the cache reaches capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often the cache checks for expired entries.
	// Zero value uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          64,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

func (c Config) options() []sturdyc.Option {
	var options []sturdyc.Option
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// sturdycPort implements the cache port on an in-process sturdyc client.
// sturdyc owns expiry at the client level, so the per-call TTL passed to Set
// is advisory: entries never outlive the configured client TTL. The Redis
// backend honors per-call TTLs exactly; use it when that matters.
type sturdycPort struct {
	client *sturdyc.Client[string]
}

// NewSturdycPort validates cfg and builds the in-process cache backend.
func NewSturdycPort(cfg Config) (*sturdycPort, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[string](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.options()...,
	)

	return &sturdycPort{client: client}, nil
}

// Get returns the payload stored at key. A missing or expired entry is a
// miss, never an error; the in-process transport cannot fail.
func (p *sturdycPort) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := p.client.Get(key)
	if !ok {
		return "", false, nil
	}
	return value, true, nil
}

// Set stores a payload at key. See the type comment for TTL semantics.
func (p *sturdycPort) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	p.client.Set(key, value)
	return nil
}

// Delete removes key so subsequent Gets miss and callers refetch from the
// backing store.
func (p *sturdycPort) Delete(ctx context.Context, key string) error {
	p.client.Delete(key)
	return nil
}
