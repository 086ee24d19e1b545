// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Source is anything that resolves asset names to handles.
type Source interface {
	ResolveHandle(name string) (Handle, error)
}

// Cache keeps resolved assets in memory for ttl. Hits are copied so no two
// callers ever share a buffer. Failed lookups are not cached.
type Cache struct {
	src   Source
	store *gocache.Cache
}

func NewCache(src Source, ttl time.Duration) *Cache {
	return &Cache{
		src:   src,
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cache) Resolve(name string) ([]byte, error) {
	h, err := c.ResolveHandle(name)
	if err != nil {
		return nil, err
	}

	return h.Data, nil
}

func (c *Cache) ResolveHandle(name string) (Handle, error) {
	if v, ok := c.store.Get(name); ok {
		h := v.(Handle)
		h.Data = slices.Clone(h.Data)
		return h, nil
	}

	h, err := c.src.ResolveHandle(name)
	if err != nil {
		return Handle{}, err
	}

	stored := h
	stored.Data = slices.Clone(h.Data)
	c.store.SetDefault(name, stored)

	return h, nil
}

// Invalidate drops name so the next lookup goes back to the source.
func (c *Cache) Invalidate(name string) { c.store.Delete(name) }

// Flush drops every cached entry.
func (c *Cache) Flush() { c.store.Flush() }

// Len is the number of cached entries, expired ones included until the next
// janitor run.
func (c *Cache) Len() int { return c.store.ItemCount() }
