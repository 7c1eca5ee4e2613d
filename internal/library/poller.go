package library

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nordskill/medialib/internal/asset"
)

// DefaultPollInterval is how often a processing asset is re-fetched.
const DefaultPollInterval = 2 * time.Second

// Poller re-fetches assets stuck in processing status until they reach
// a terminal state. Poll errors are swallowed — polling is itself the
// retry mechanism — and every tracked id gets its own timer, stopped
// the moment the asset completes or tracking is cancelled.
type Poller struct {
	client   APIClient
	interval time.Duration
	onReady  func(asset.Asset)
	log      *zap.Logger

	mu     sync.Mutex
	stops  map[string]chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewPoller creates a poller reporting completions through onReady.
func NewPoller(client APIClient, interval time.Duration, onReady func(asset.Asset), log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{
		client:   client,
		interval: interval,
		onReady:  onReady,
		log:      log,
		stops:    make(map[string]chan struct{}),
	}
}

// Track begins polling the asset. Assets already in a terminal state,
// ids already tracked, and calls after Close are no-ops.
func (p *Poller) Track(a asset.Asset) {
	if a.Status.Terminal() {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	if _, tracking := p.stops[a.ID]; tracking {
		p.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	p.stops[a.ID] = stop
	p.wg.Add(1)
	p.mu.Unlock()

	go p.poll(a.ID, stop)
}

func (p *Poller) poll(id string, stop <-chan struct{}) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			cur, err := p.client.Get(context.Background(), id)
			if err != nil {
				// Transient failures must not abandon tracking.
				p.log.Debug("poll failed, will retry", zap.String("id", id), zap.Error(err))
				continue
			}
			if !cur.Status.Terminal() {
				continue
			}
			p.drop(id)
			if p.onReady != nil {
				p.onReady(*cur)
			}
			return
		}
	}
}

// Untrack stops polling the given id, if it is being tracked.
func (p *Poller) Untrack(id string) {
	p.mu.Lock()
	stop, ok := p.stops[id]
	if ok {
		delete(p.stops, id)
	}
	p.mu.Unlock()
	if ok {
		close(stop)
	}
}

// Tracking reports whether the id currently has a live timer.
func (p *Poller) Tracking(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.stops[id]
	return ok
}

// Close cancels all timers and waits for the poll goroutines to exit.
// Subsequent Track calls are ignored.
func (p *Poller) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for id, stop := range p.stops {
		close(stop)
		delete(p.stops, id)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// drop removes the id's entry without closing the stop channel; used
// from the poll goroutine itself on completion.
func (p *Poller) drop(id string) {
	p.mu.Lock()
	delete(p.stops, id)
	p.mu.Unlock()
}
