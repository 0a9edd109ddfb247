package out

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by ExportCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ExportCache stores rendered export artifacts.
type ExportCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
