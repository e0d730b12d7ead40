package cache

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-crm-store/internal/cacheinfra"
)

// Config exposes configuration options for the in-process cache backend.
type Config struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewMemory constructs the in-process Port implementation backed by sturdyc.
// Entries expire at the configured TTL; per-call TTLs passed to Set are
// capped by it.
func NewMemory(cfg Config) (Port, error) {
	return cacheinfra.NewSturdycPort(cfg.toInternal())
}

// NewRedis constructs a Port backed by the given Redis client. Per-call TTLs
// are honored exactly; transport failures surface as CacheUnavailable.
func NewRedis(client redis.UniversalClient) Port {
	return cacheinfra.NewRedisPort(client)
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
