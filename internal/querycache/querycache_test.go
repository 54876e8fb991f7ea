package querycache

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New()

	_, ok := c.Get("libraries")
	assert.False(t, ok)

	c.Set("libraries", []string{"a", "b"}, "libraries")
	value, ok := c.Get("libraries")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, value)
}

func TestInvalidateByTag(t *testing.T) {
	c := New()
	c.Set("notifications:feed", "feed", "notifications")
	c.Set("notifications:unread", 3, "notifications", "unread-count")
	c.Set("libraries", "libs", "libraries")

	dropped := c.Invalidate("notifications")
	assert.Equal(t, 2, dropped)

	_, ok := c.Get("notifications:feed")
	assert.False(t, ok)
	_, ok = c.Get("notifications:unread")
	assert.False(t, ok)

	// Entries with unrelated tags survive
	_, ok = c.Get("libraries")
	assert.True(t, ok)
}

func TestInvalidateUnknownTag(t *testing.T) {
	c := New()
	c.Set("libraries", "libs", "libraries")
	assert.Equal(t, 0, c.Invalidate("book-clubs"))
}

func TestFetchCachesThrough(t *testing.T) {
	c := New()
	calls := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	value, err := c.Fetch(context.Background(), "unread", []string{"notifications"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, value)

	// Second read hits the cache
	value, err = c.Fetch(context.Background(), "unread", []string{"notifications"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, value)
	assert.Equal(t, 1, calls)

	// Invalidation forces a refetch
	c.Invalidate("notifications")
	value, err = c.Fetch(context.Background(), "unread", []string{"notifications"}, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, value)
}

func TestFetchErrorNotCached(t *testing.T) {
	c := New()
	boom := errors.New("network down")
	calls := 0

	_, err := c.Fetch(context.Background(), "k", nil, func(ctx context.Context) (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "ok", nil
	})
	assert.ErrorIs(t, err, boom)

	value, err := c.Fetch(context.Background(), "k", nil, func(ctx context.Context) (interface{}, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestInvalidateDuringFetchIsNotCached(t *testing.T) {
	c := New()

	value, err := c.Fetch(context.Background(), "unread", []string{"notifications"}, func(ctx context.Context) (interface{}, error) {
		// Mutation lands while this fetch is still in flight.
		c.Invalidate("notifications")
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", value)

	// The invalidated result must not have repopulated the cache; the
	// next read fetches fresh data.
	_, ok := c.Get("unread")
	assert.False(t, ok)

	value, err = c.Fetch(context.Background(), "unread", []string{"notifications"}, func(ctx context.Context) (interface{}, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", value)
}

func TestInvalidateUnrelatedTagDuringFetchStillCaches(t *testing.T) {
	c := New()

	_, err := c.Fetch(context.Background(), "unread", []string{"notifications"}, func(ctx context.Context) (interface{}, error) {
		c.Invalidate("libraries")
		return 3, nil
	})
	require.NoError(t, err)

	value, ok := c.Get("unread")
	require.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestClearDuringFetchIsNotCached(t *testing.T) {
	c := New()

	_, err := c.Fetch(context.Background(), "libraries", []string{"libraries"}, func(ctx context.Context) (interface{}, error) {
		c.Clear()
		return "stale", nil
	})
	require.NoError(t, err)

	_, ok := c.Get("libraries")
	assert.False(t, ok)
}

func TestLastWriteWinsOnRacingSets(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set("books", n, "books")
		}(i)
	}
	wg.Wait()

	value, ok := c.Get("books")
	require.True(t, ok)
	assert.IsType(t, 0, value)
}
