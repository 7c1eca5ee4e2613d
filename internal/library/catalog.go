package library

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nordskill/medialib/internal/api"
	"github.com/nordskill/medialib/internal/asset"
)

// APIClient is the surface of the remote asset API the engine consumes.
// *api.Client satisfies it; tests substitute fakes.
type APIClient interface {
	List(ctx context.Context, kind asset.Kind, page int) (*api.ListResult, error)
	Get(ctx context.Context, id string) (*asset.Asset, error)
	Create(ctx context.Context, fileName string, content io.Reader, meta api.FileData) (*asset.Asset, error)
	Delete(ctx context.Context, ids []string) ([]string, error)
}

// Catalog owns the ordered list of known assets for one engine
// instance: the active filter, the page cursor, and the in-flight
// fetch guard. At most one page fetch is outstanding at any time;
// repeated LoadNextPage calls while one is outstanding are dropped,
// not queued.
type Catalog struct {
	client APIClient

	mu         sync.Mutex
	items      []asset.Asset
	seen       map[string]struct{}
	filter     asset.Kind
	page       int
	totalPages int
	totalCount int
	counts     map[asset.Kind]int
	fetching   bool
	gen        uint64 // bumped on every reset; stale fetch results are discarded
}

// NewCatalog creates an empty catalog backed by the given client.
func NewCatalog(client APIClient) *Catalog {
	return &Catalog{
		client: client,
		seen:   make(map[string]struct{}),
		counts: make(map[asset.Kind]int),
	}
}

// LoadFirstPage resets the catalog for the given filter and fetches
// page one. On failure the previous items are left untouched. A reset
// supersedes any page fetch still in flight: its result is discarded
// when it lands.
func (c *Catalog) LoadFirstPage(ctx context.Context, kind asset.Kind) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.fetching = true
	c.mu.Unlock()

	res, err := c.client.List(ctx, kind, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer reset won the race; drop this response.
		return nil
	}
	c.fetching = false
	if err != nil {
		return fmt.Errorf("loading first page: %w", err)
	}

	c.items = nil
	c.seen = make(map[string]struct{})
	c.filter = kind
	c.page = 1
	c.applyPage(res)
	return nil
}

// LoadNextPage fetches the page after the current one with the active
// filter and appends its assets. It is a no-op — resolving immediately
// with fetched=false — when a fetch is already in flight or the last
// page has been reached. Safe to call repeatedly in quick succession.
func (c *Catalog) LoadNextPage(ctx context.Context) (fetched bool, err error) {
	c.mu.Lock()
	if c.fetching || c.page >= c.totalPages {
		c.mu.Unlock()
		return false, nil
	}
	c.fetching = true
	gen := c.gen
	page := c.page + 1
	kind := c.filter
	c.mu.Unlock()

	res, err := c.client.List(ctx, kind, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// Filter changed while we were fetching; the reset path owns
		// the guard now, so leave everything alone.
		return false, nil
	}
	c.fetching = false
	if err != nil {
		return false, fmt.Errorf("loading page %d: %w", page, err)
	}

	c.page = page
	c.applyPage(res)
	return true, nil
}

// applyPage merges a server page into items, deduplicating ids, and
// refreshes the counters. Caller holds the lock.
func (c *Catalog) applyPage(res *api.ListResult) {
	for _, a := range res.Files {
		if _, dup := c.seen[a.ID]; dup {
			continue
		}
		c.seen[a.ID] = struct{}{}
		c.items = append(c.items, a)
	}
	c.totalCount = res.TotalCount
	c.totalPages = pageCount(res.TotalCount)
	c.counts = make(map[asset.Kind]int, len(res.CountsByType))
	for _, kc := range res.CountsByType {
		c.counts[kc.Kind] = kc.Count
	}
}

func pageCount(total int) int {
	return (total + api.PageSize - 1) / api.PageSize
}

// Prepend inserts a freshly uploaded asset at the head of the list,
// regardless of the active filter — a new upload is always visible
// immediately. Already-known ids are ignored.
func (c *Catalog) Prepend(a asset.Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.seen[a.ID]; dup {
		return
	}
	c.seen[a.ID] = struct{}{}
	c.items = append([]asset.Asset{a}, c.items...)
	c.totalCount++
	c.counts[a.Kind]++
	c.totalPages = pageCount(c.totalCount)
}

// ApplyUpdate replaces the stored asset with the same id, typically
// after the poller observed a status change. Returns false when the
// asset is no longer listed.
func (c *Catalog) ApplyUpdate(a asset.Asset) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == a.ID {
			c.items[i] = a
			return true
		}
	}
	return false
}

// Remove evicts the given ids and decrements the counters for those
// that were actually present. Idempotent.
func (c *Catalog) Remove(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		if _, ok := c.seen[id]; !ok {
			continue
		}
		delete(c.seen, id)
		if a := asset.ByID(c.items, id); a != nil {
			c.counts[a.Kind]--
			c.totalCount--
		}
	}
	c.items = asset.Remove(c.items, ids)
	c.totalPages = pageCount(c.totalCount)
}

// Items returns a copy of the ordered asset list.
func (c *Catalog) Items() []asset.Asset {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]asset.Asset, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns the catalog order as a slice of ids.
func (c *Catalog) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return asset.IDs(c.items)
}

// Counts returns the total count and a copy of the per-kind tallies.
func (c *Catalog) Counts() (int, map[asset.Kind]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byKind := make(map[asset.Kind]int, len(c.counts))
	for k, v := range c.counts {
		byKind[k] = v
	}
	return c.totalCount, byKind
}

// Filter returns the active kind restriction ("" means all).
func (c *Catalog) Filter() asset.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Fetching reports whether a page fetch is currently outstanding.
func (c *Catalog) Fetching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching
}

// Exhausted reports whether every server page has been loaded.
func (c *Catalog) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page >= c.totalPages
}
