// Package cache stores secondary lookup results (video ids, grounded
// answers) keyed by normalized query.
package cache

import (
	"context"
	"fmt"
	"strings"

	"nexus/internal/config"
)

// Store is a string key/value cache with per-store expiry.
type Store interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Key builds a cache key from a namespace and a free-text query. Queries
// that differ only in case or surrounding whitespace share a key.
func Key(namespace, query string) string {
	query = strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return namespace + ":" + query
}

// New builds the configured store. It returns nil when caching is off.
func New(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendMemory, "":
		return NewMemory(cfg.Capacity, cfg.TTL), nil
	case config.CacheBackendRedis:
		store, err := NewRedis(ctx, cfg.RedisURL, cfg.KeyPrefix, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
}
