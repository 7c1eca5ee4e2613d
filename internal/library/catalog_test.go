package library_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordskill/medialib/internal/api"
	"github.com/nordskill/medialib/internal/asset"
	"github.com/nordskill/medialib/internal/library"
)

func TestCatalog_LoadFirstPage(t *testing.T) {
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		assert.Equal(t, asset.KindImage, kind)
		assert.Equal(t, 1, p)
		return page(65, asset.KindImage, "a", "b"), nil
	}

	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), asset.KindImage))

	assert.Equal(t, []string{"a", "b"}, c.IDs())
	total, byKind := c.Counts()
	assert.Equal(t, 65, total)
	assert.Equal(t, 65, byKind[asset.KindImage])
	assert.False(t, c.Exhausted(), "65 items at page size 30 means 3 pages")
}

func TestCatalog_LoadFirstPageFailureKeepsItems(t *testing.T) {
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		return page(2, asset.KindImage, "a", "b"), nil
	}
	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), ""))

	fake.mu.Lock()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		return nil, assert.AnError
	}
	fake.mu.Unlock()

	err := c.LoadFirstPage(context.Background(), asset.KindVideo)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, c.IDs(), "failed reset must leave items unchanged")
	assert.False(t, c.Fetching(), "guard must be cleared after a failed fetch")
}

// P1: items never contains two entries with the same id, even when the
// server shifts rows between pages.
func TestCatalog_DeduplicatesAcrossPages(t *testing.T) {
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		if p == 1 {
			return page(35, "", "a", "b", "c"), nil
		}
		return page(35, "", "c", "d"), nil // "c" slid onto page 2
	}

	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), ""))
	fetched, err := c.LoadNextPage(context.Background())
	require.NoError(t, err)
	require.True(t, fetched)

	assert.Equal(t, []string{"a", "b", "c", "d"}, c.IDs())
}

func TestCatalog_PrependDeduplicates(t *testing.T) {
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		return page(2, asset.KindImage, "a", "b"), nil
	}
	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), ""))

	c.Prepend(asset.Asset{ID: "new", Kind: asset.KindImage})
	c.Prepend(asset.Asset{ID: "a", Kind: asset.KindImage}) // already listed

	assert.Equal(t, []string{"new", "a", "b"}, c.IDs())
	total, _ := c.Counts()
	assert.Equal(t, 3, total)
}

// P2: N overlapping LoadNextPage calls produce exactly one network
// call and one appended page.
func TestCatalog_GuardedFetch(t *testing.T) {
	gate := make(chan struct{})
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		if p == 1 {
			return page(60, "", "a"), nil
		}
		<-gate
		return page(60, "", "b"), nil
	}

	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), ""))

	done := make(chan struct{})
	go func() {
		defer close(done)
		fetched, err := c.LoadNextPage(context.Background())
		assert.NoError(t, err)
		assert.True(t, fetched)
	}()

	waitFor(t, c.Fetching, "fetch should be in flight")

	// Hammer the guard while the fetch is outstanding.
	for i := 0; i < 5; i++ {
		fetched, err := c.LoadNextPage(context.Background())
		require.NoError(t, err)
		assert.False(t, fetched, "overlapping call %d must be dropped, not queued", i)
	}

	close(gate)
	<-done

	assert.Equal(t, 2, fake.listCount(), "exactly one page-2 request")
	assert.Equal(t, []string{"a", "b"}, c.IDs())
}

// P3: switching filters leaves no residue from the previous filter.
func TestCatalog_FilterReset(t *testing.T) {
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		if kind == asset.KindImage {
			return page(2, asset.KindImage, "img1", "img2"), nil
		}
		return page(1, asset.KindVideo, "vid1"), nil
	}

	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), asset.KindImage))
	require.NoError(t, c.LoadFirstPage(context.Background(), asset.KindVideo))

	assert.Equal(t, []string{"vid1"}, c.IDs())
	assert.Equal(t, asset.KindVideo, c.Filter())
}

// Ordering guarantee (d): a page fetch that was in flight when the
// filter changed must not leak its rows into the new filter's list.
func TestCatalog_StalePageDiscardedAfterFilterChange(t *testing.T) {
	gate := make(chan struct{})
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		switch {
		case kind == "" && p == 1:
			return page(60, "", "a"), nil
		case kind == "" && p == 2:
			<-gate
			return page(60, "", "stale1", "stale2"), nil
		default:
			return page(1, asset.KindVideo, "vid1"), nil
		}
	}

	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), ""))

	done := make(chan struct{})
	go func() {
		defer close(done)
		fetched, err := c.LoadNextPage(context.Background())
		assert.NoError(t, err)
		assert.False(t, fetched, "superseded fetch must report nothing")
	}()
	waitFor(t, c.Fetching, "page-2 fetch should be in flight")

	require.NoError(t, c.LoadFirstPage(context.Background(), asset.KindVideo))
	close(gate)
	<-done

	assert.Equal(t, []string{"vid1"}, c.IDs(), "stale page must not leak across the filter switch")
	assert.False(t, c.Fetching())
}

func TestCatalog_RemoveAdjustsCounters(t *testing.T) {
	fake := newFakeAPI()
	fake.listFn = func(kind asset.Kind, p int) (*api.ListResult, error) {
		res := page(3, asset.KindImage, "a", "b")
		res.Files = append(res.Files, asset.Asset{ID: "v", Kind: asset.KindVideo})
		res.CountsByType = []api.KindCount{
			{Kind: asset.KindImage, Count: 2},
			{Kind: asset.KindVideo, Count: 1},
		}
		return res, nil
	}
	c := library.NewCatalog(fake)
	require.NoError(t, c.LoadFirstPage(context.Background(), ""))

	c.Remove([]string{"b", "v", "ghost"})
	c.Remove([]string{"b"}) // idempotent

	assert.Equal(t, []string{"a"}, c.IDs())
	total, byKind := c.Counts()
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, byKind[asset.KindImage])
	assert.Equal(t, 0, byKind[asset.KindVideo])
}

// waitFor polls cond until true or the deadline expires.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}
