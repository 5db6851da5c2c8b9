// Package cache memoizes resolved functions per routine oid and calling
// convention. Resolution is lazy: the first caller binds, later callers
// reuse. Two racing first callers may both bind; the loser's result is
// discarded, which is harmless since bound functions are immutable and
// equivalent.
package cache

import (
	"context"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/Sednai/pljava/binder"
	"github.com/Sednai/pljava/datum"
)

// Key identifies one cache slot. Ordinary and trigger bindings of the
// same routine are distinct entries.
type Key struct {
	Oid     datum.Oid
	Trigger bool
}

// Cache is a concurrent function cache over a binder.
type Cache struct {
	b *binder.Binder
	m sync.Map
}

// New builds an empty cache over b.
func New(b *binder.Binder) *Cache {
	return &Cache{b: b}
}

// Get returns the bound function for a routine, binding it on first use.
// Errors are not cached; a failed bind is retried on the next call.
func (c *Cache) Get(ctx context.Context, oid datum.Oid, forTrigger bool) (*binder.Function, error) {
	k := Key{Oid: oid, Trigger: forTrigger}
	if v, ok := c.m.Load(k); ok {
		return v.(*binder.Function), nil
	}
	f, err := c.b.Bind(ctx, oid, forTrigger)
	if err != nil {
		return nil, err
	}
	v, _ := c.m.LoadOrStore(k, f)
	return v.(*binder.Function), nil
}

// Invalidate drops both the ordinary and trigger entries for a routine,
// after a catalog change.
func (c *Cache) Invalidate(oid datum.Oid) {
	c.m.Delete(Key{Oid: oid})
	c.m.Delete(Key{Oid: oid, Trigger: true})
}

// InvalidateSet drops every entry whose routine oid is in the set.
// Catalog change notification batches arrive as oid sets.
func (c *Cache) InvalidateSet(set *roaring.Bitmap) {
	if set == nil || set.IsEmpty() {
		return
	}
	c.m.Range(func(k, _ any) bool {
		if set.Contains(uint32(k.(Key).Oid)) {
			c.m.Delete(k)
		}
		return true
	})
}

// Len counts the cached entries.
func (c *Cache) Len() int {
	n := 0
	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
