// Package querycache holds fetched API responses keyed by query identity,
// with explicit invalidation by tag. A mutation invalidates the tags it
// affects; the next read of an invalidated key fetches fresh data. A fetch
// that was already in flight when one of its tags was invalidated does not
// repopulate the cache, so invalidate-then-refetch always wins.
package querycache

import (
	"context"
	"sync"
)

type entry struct {
	value interface{}
	tags  map[string]struct{}
}

// Cache is a thread-safe in-memory query cache
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	// ticks advances on every invalidation so in-flight fetches that
	// started before it can be recognised and discarded.
	ticks     uint64
	staleTags map[string]uint64
	clearedAt uint64
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		entries:   make(map[string]*entry),
		staleTags: make(map[string]uint64),
	}
}

// Get returns the cached value for key, if present
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key, associated with the given tags
func (c *Cache) Set(key string, value interface{}, tags ...string) {
	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{value: value, tags: tagSet}
}

// Invalidate drops every entry carrying any of the given tags and returns
// the number of entries dropped.
func (c *Cache) Invalidate(tags ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ticks++
	for _, tag := range tags {
		c.staleTags[tag] = c.ticks
	}

	dropped := 0
	for key, e := range c.entries {
		for _, tag := range tags {
			if _, ok := e.tags[tag]; ok {
				delete(c.entries, key)
				dropped++
				break
			}
		}
	}
	return dropped
}

// Fetch returns the cached value for key, or calls fn to fetch it and
// caches the result under the given tags. A fetch error is returned
// without caching anything. If any of the tags is invalidated while fn
// runs, the result is returned to the caller but not cached.
func (c *Cache) Fetch(ctx context.Context, key string, tags []string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.value, nil
	}
	began := c.ticks
	c.mu.Unlock()

	value, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	c.setIfFresh(key, value, began, tags)
	return value, nil
}

func (c *Cache) setIfFresh(key string, value interface{}, began uint64, tags []string) {
	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clearedAt > began {
		return
	}
	for _, tag := range tags {
		if c.staleTags[tag] > began {
			return
		}
	}
	c.entries[key] = &entry{value: value, tags: tagSet}
}

// Clear drops all entries
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
	c.clearedAt = c.ticks
	c.entries = make(map[string]*entry)
}
