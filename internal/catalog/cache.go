// Package catalog provides a read-through cache over the item repository with
// a bounded staleness window. The whole snapshot is replaced atomically on
// refresh; readers never observe a partially updated catalog, and a failed
// refresh never blocks the ordering flow.
package catalog

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"buffet/internal/core/domain/model/item"
	"buffet/internal/core/domain/model/kernel"
	"buffet/internal/core/ports"
)

// DefaultTTL is the staleness bound applied when no explicit TTL is given.
const DefaultTTL = 300 * time.Second

type snapshot struct {
	items     []item.Item
	fetchedAt time.Time
}

// Cache is a read-through catalog snapshot with atomic whole-snapshot
// replacement. A single refresh runs at a time; concurrent readers that find
// the snapshot stale while a refresh is in flight are served the previous
// snapshot rather than waiting.
type Cache struct {
	items  ports.ItemRepository
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	current    atomic.Pointer[snapshot]
	refreshing sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the staleness bound.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// NewCache creates a catalog cache over the given item repository.
// The cache starts empty; the first read triggers a fetch.
func NewCache(items ports.ItemRepository, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		items:  items,
		ttl:    DefaultTTL,
		logger: logger.With("component", "catalog_cache"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAvailable returns the currently orderable items. On a cold or expired
// snapshot it fetches the full available set and replaces the snapshot
// atomically. On fetch failure it serves the last good snapshot if one
// exists, else an empty slice; the failure is logged, never returned. The
// user flow is never blocked on a transient catalog-read failure.
func (c *Cache) ListAvailable(ctx context.Context) []item.Item {
	snap := c.current.Load()
	if snap != nil && c.now().Sub(snap.fetchedAt) < c.ttl {
		return snap.items
	}

	if err := c.Refresh(ctx); err != nil {
		c.logger.ErrorContext(ctx, "catalog refresh failed, serving last good snapshot", "error", err)
		if snap != nil {
			return snap.items
		}
		return []item.Item{}
	}

	return c.current.Load().items
}

// Find resolves one item by ID from the current available set.
// Uses the same snapshot semantics as ListAvailable.
func (c *Cache) Find(ctx context.Context, id kernel.UUID) (item.Item, bool) {
	for _, itm := range c.ListAvailable(ctx) {
		if itm.ID().IsEqual(id) {
			return itm, true
		}
	}
	return item.Item{}, false
}

// Refresh fetches the full available-item set and installs it as the new
// snapshot. Only one refresh runs at a time; a caller that loses the race
// returns the winner's result without a second fetch.
func (c *Cache) Refresh(ctx context.Context) error {
	c.refreshing.Lock()
	defer c.refreshing.Unlock()

	// Another caller may have refreshed while this one waited for the lock.
	if snap := c.current.Load(); snap != nil && c.now().Sub(snap.fetchedAt) < c.ttl {
		return nil
	}

	items, err := c.items.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	c.current.Store(&snapshot{items: items, fetchedAt: c.now()})
	return nil
}
