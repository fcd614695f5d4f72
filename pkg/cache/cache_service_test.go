package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedItem struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

func TestMemoryCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "food:feed", []feedItem{{ID: "a", Price: 99}}, time.Minute))

	var got []feedItem
	require.NoError(t, c.Get(ctx, "food:feed", &got))
	assert.Equal(t, []feedItem{{ID: "a", Price: 99}}, got)

	ok, err := c.Exists(ctx, "food:feed")
	assert.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "food:feed"))
	assert.ErrorIs(t, c.Get(ctx, "food:feed", &got), ErrCacheMiss)
}

func TestMemoryCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))

	var v int
	assert.NoError(t, c.Get(ctx, "k", &v))

	now = now.Add(2 * time.Second)
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrCacheMiss)
	ok, _ := c.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheInvalidatePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "food:feed", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "food:partner:p1", 2, time.Minute))
	require.NoError(t, c.Set(ctx, "user:1", 3, time.Minute))

	require.NoError(t, c.InvalidatePattern(ctx, "food:*"))

	ok, _ := c.Exists(ctx, "food:feed")
	assert.False(t, ok)
	ok, _ = c.Exists(ctx, "user:1")
	assert.True(t, ok)
}
