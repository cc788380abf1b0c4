package cache

import (
	"context"
	"sync"
)

// Listing view names. Each entity type has exactly one cached listing.
const (
	ViewInvoices  = "invoices"
	ViewCustomers = "customers"
)

// ListingCache stores serialized listing views. Invalidate marks a view stale so
// the next Get misses; it has no error result because callers cannot act on one.
//
// Every Invalidate moves the view to a new generation. A reader takes the
// generation before it loads from the store and passes it to Set, which drops
// the payload if the view was invalidated in the meantime.
type ListingCache interface {
	Get(ctx context.Context, view string) ([]byte, bool)
	Generation(ctx context.Context, view string) int64
	Set(ctx context.Context, view string, gen int64, payload []byte)
	Invalidate(ctx context.Context, view string)
}

// InMemoryListingCache keeps views in process memory.
type InMemoryListingCache struct {
	mu    sync.Mutex
	views map[string][]byte
	gens  map[string]int64
}

func NewInMemoryListingCache() *InMemoryListingCache {
	return &InMemoryListingCache{
		views: make(map[string][]byte),
		gens:  make(map[string]int64),
	}
}

func (c *InMemoryListingCache) Get(_ context.Context, view string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.views[view]
	return payload, ok
}

func (c *InMemoryListingCache) Generation(_ context.Context, view string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[view]
}

func (c *InMemoryListingCache) Set(_ context.Context, view string, gen int64, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[view] != gen {
		return
	}
	c.views[view] = payload
}

func (c *InMemoryListingCache) Invalidate(_ context.Context, view string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[view]++
	delete(c.views, view)
}

var _ ListingCache = (*InMemoryListingCache)(nil)
