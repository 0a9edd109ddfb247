package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brand_server/core/port/out"
)

func TestMemoryExportCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryExportCache(2, time.Minute)

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, out.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 0))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 0))

	assert.Equal(t, 2, c.Len())
	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, out.ErrCacheMiss, "oldest entry is evicted")

	got, err := c.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), got)
}

func TestMemoryExportCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryExportCache(4, 20*time.Millisecond)
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	time.Sleep(60 * time.Millisecond)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, out.ErrCacheMiss)
}
