package library_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordskill/medialib/internal/asset"
	"github.com/nordskill/medialib/internal/library"
)

func processing(id string) asset.Asset {
	return asset.Asset{ID: id, Kind: asset.KindImage, Status: asset.StatusProcessing}
}

func optimized(id string) asset.Asset {
	return asset.Asset{ID: id, Kind: asset.KindImage, Status: asset.StatusOptimized}
}

// P8: two processing polls then an optimized one mean exactly three
// poll calls and no timer activity afterwards.
func TestPoller_TerminatesOnOptimized(t *testing.T) {
	fake := newFakeAPI()
	fake.getFn = func(id string, call int) (*asset.Asset, error) {
		if call < 3 {
			a := processing(id)
			return &a, nil
		}
		a := optimized(id)
		return &a, nil
	}

	ready := make(chan asset.Asset, 1)
	p := library.NewPoller(fake, 5*time.Millisecond, func(a asset.Asset) { ready <- a }, nil)
	defer p.Close()

	p.Track(processing("x"))

	select {
	case a := <-ready:
		assert.Equal(t, "x", a.ID)
		assert.Equal(t, asset.StatusOptimized, a.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("asset never became ready")
	}

	assert.Equal(t, 3, fake.getCount("x"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 3, fake.getCount("x"), "timer must stop after completion")
	assert.False(t, p.Tracking("x"))
}

func TestPoller_SwallowsTransientErrors(t *testing.T) {
	fake := newFakeAPI()
	fake.getFn = func(id string, call int) (*asset.Asset, error) {
		if call == 1 {
			return nil, assert.AnError
		}
		a := optimized(id)
		return &a, nil
	}

	ready := make(chan asset.Asset, 1)
	p := library.NewPoller(fake, 5*time.Millisecond, func(a asset.Asset) { ready <- a }, nil)
	defer p.Close()

	p.Track(processing("y"))

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("poll error abandoned tracking")
	}
	require.GreaterOrEqual(t, fake.getCount("y"), 2)
}

func TestPoller_TrackOptimizedIsNoop(t *testing.T) {
	fake := newFakeAPI()
	p := library.NewPoller(fake, 5*time.Millisecond, nil, nil)
	defer p.Close()

	p.Track(optimized("z"))
	assert.False(t, p.Tracking("z"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, fake.getCount("z"))
}

func TestPoller_TrackIsIdempotentPerID(t *testing.T) {
	fake := newFakeAPI()
	fake.getFn = func(id string, call int) (*asset.Asset, error) {
		a := processing(id)
		return &a, nil
	}
	p := library.NewPoller(fake, 10*time.Millisecond, nil, nil)
	defer p.Close()

	p.Track(processing("w"))
	p.Track(processing("w"))
	time.Sleep(35 * time.Millisecond)
	p.Close()

	// One timer, not two: roughly one call per interval elapsed.
	assert.LessOrEqual(t, fake.getCount("w"), 4)
}

func TestPoller_UntrackStopsTimer(t *testing.T) {
	fake := newFakeAPI()
	fake.getFn = func(id string, call int) (*asset.Asset, error) {
		a := processing(id)
		return &a, nil
	}
	p := library.NewPoller(fake, 5*time.Millisecond, nil, nil)
	defer p.Close()

	p.Track(processing("u"))
	waitFor(t, func() bool { return fake.getCount("u") >= 1 }, "no poll happened")

	p.Untrack("u")
	assert.False(t, p.Tracking("u"))
	settled := fake.getCount("u")
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, fake.getCount("u"), settled+1, "untracked id must not keep polling")
}

func TestPoller_CloseReleasesEverything(t *testing.T) {
	fake := newFakeAPI()
	fake.getFn = func(id string, call int) (*asset.Asset, error) {
		a := processing(id)
		return &a, nil
	}
	p := library.NewPoller(fake, 5*time.Millisecond, nil, nil)

	p.Track(processing("a"))
	p.Track(processing("b"))
	p.Close()
	p.Close() // idempotent

	assert.False(t, p.Tracking("a"))
	assert.False(t, p.Tracking("b"))

	// Tracking after close is ignored.
	p.Track(processing("c"))
	assert.False(t, p.Tracking("c"))
}
