package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"brand_server/core/port/out"
)

// MemoryExportCache is the in-process fallback used when no Redis URL is set.
// Entries share one TTL; the per-call ttl argument is ignored.
type MemoryExportCache struct {
	lru *expirable.LRU[string, []byte]
}

var _ out.ExportCache = (*MemoryExportCache)(nil)

// NewMemoryExportCache keeps at most size artifacts for ttl each.
func NewMemoryExportCache(size int, ttl time.Duration) *MemoryExportCache {
	if size <= 0 {
		size = 128
	}
	return &MemoryExportCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *MemoryExportCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, out.ErrCacheMiss
	}
	return v, nil
}

func (c *MemoryExportCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.lru.Add(key, value)
	return nil
}

// Len reports the number of live entries.
func (c *MemoryExportCache) Len() int { return c.lru.Len() }
