// Package cache stores rendered export documents keyed by the content that
// produced them.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP server, and [NullCache] when caching is disabled. Keys come
// from a [Keyer], which hashes the blueprint source together with every
// option that changes the output, so a cache hit is always byte-identical
// to a fresh export.
//
// Wrap a backend with [Instrument] to report hits, misses and writes through
// the observability cache hooks.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/bpjson/pkg/observability"
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Instrument reports cache traffic for c to the global cache hooks under
// the given namespace, for example "export" or "catalog".
func Instrument(c Cache, namespace string) Cache {
	return &instrumented{Cache: c, namespace: namespace}
}

type instrumented struct {
	Cache
	namespace string
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.namespace)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.namespace)
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.namespace, len(data))
	}
	return err
}
