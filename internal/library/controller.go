package library

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nordskill/medialib/internal/asset"
)

// ErrClosed is returned by intent methods invoked after Close.
var ErrClosed = errors.New("library: controller is closed")

// Controller is the composition root of one asset library instance. It
// wires the catalog, upload pipeline, status poller and selection
// together, exposes the engine's intents, and publishes state changes
// to subscribers. Each logical context (page manager, modal picker)
// constructs its own Controller; instances share nothing.
type Controller struct {
	client    APIClient
	catalog   *Catalog
	selection *Selection
	poller    *Poller
	pipeline  *Pipeline
	log       *zap.Logger

	mu       sync.Mutex
	subs     map[int]func(Event)
	nextSub  int
	armed    bool // load-more guard: true when a near-end edge may trigger a fetch
	deleting bool
	closed   bool
	wg       sync.WaitGroup
}

// Option customizes a Controller.
type Option func(*options)

type options struct {
	log           *zap.Logger
	pollInterval  time.Duration
	uploadWorkers int
	prober        Prober
}

// WithLogger attaches a structured logger; default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithPollInterval overrides the status poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithUploadWorkers overrides the upload concurrency bound.
func WithUploadWorkers(n int) Option {
	return func(o *options) { o.uploadWorkers = n }
}

// WithProber substitutes the local metadata extractor, mainly for tests.
func WithProber(p Prober) Option {
	return func(o *options) { o.prober = p }
}

// New constructs a Controller around the given API client.
func New(client APIClient, opts ...Option) *Controller {
	o := options{pollInterval: DefaultPollInterval, uploadWorkers: DefaultUploadWorkers}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}

	c := &Controller{
		client:    client,
		catalog:   NewCatalog(client),
		selection: NewSelection(),
		log:       o.log,
		subs:      make(map[int]func(Event)),
		armed:     true,
	}
	c.poller = NewPoller(client, o.pollInterval, c.assetReady, o.log)
	c.pipeline = NewPipeline(client, o.prober, o.uploadWorkers, c.uploadStored, c.uploadFailed, o.log)
	return c
}

// Subscribe registers an event handler scoped to this instance and
// returns its unsubscribe function. Handlers run on the goroutine
// whose operation produced the event.
func (c *Controller) Subscribe(fn func(Event)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) emit(ev Event) {
	c.mu.Lock()
	handlers := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		handlers = append(handlers, fn)
	}
	c.mu.Unlock()
	for _, fn := range handlers {
		fn(ev)
	}
}

// LoadFirstPage resets the catalog for the given filter and loads the
// first page. The load-more guard is force re-armed — pagination
// restarts from scratch after a filter switch — and ids that vanished
// with the filter are evicted from the selection.
func (c *Controller) LoadFirstPage(ctx context.Context, kind asset.Kind) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.armed = true
	c.mu.Unlock()

	if err := c.catalog.LoadFirstPage(ctx, kind); err != nil {
		return err
	}
	c.selection.ReconcileWith(c.catalog.IDs())
	c.emitCatalog()
	c.emitSelection()
	return nil
}

// NearEndOfList receives the presentation layer's "near end of the
// visible list" signal. A fetch fires only on the edge where the
// signal turns true while the guard is armed and no fetch is in
// flight; repeated true signals while fetching are dropped. The guard
// re-arms when the signal falls back to false and after each fetch
// settles, so the operator can retry a failed page by scrolling again.
func (c *Controller) NearEndOfList(ctx context.Context, near bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if !near {
		c.armed = true
		c.mu.Unlock()
		return
	}
	if !c.armed || c.catalog.Fetching() {
		c.mu.Unlock()
		return
	}
	c.armed = false
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		fetched, err := c.catalog.LoadNextPage(ctx)
		c.mu.Lock()
		c.armed = true
		c.mu.Unlock()
		if err != nil {
			c.log.Warn("page fetch failed", zap.Error(err))
			return
		}
		if fetched {
			c.emitCatalog()
		}
	}()
}

// SubmitUploads runs the given local files through the upload pipeline
// without blocking the caller. Each stored asset is prepended to the
// catalog and handed to the status poller; each failure surfaces as an
// UploadFailed event naming the file.
func (c *Controller) SubmitUploads(ctx context.Context, paths []string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.pipeline.Submit(ctx, paths)
	}()
}

// uploadStored merges one successful upload into the catalog.
func (c *Controller) uploadStored(a asset.Asset) {
	c.catalog.Prepend(a)
	c.poller.Track(a)
	c.emitCatalog()
}

func (c *Controller) uploadFailed(job Job, err error) {
	c.emit(UploadFailed{JobID: job.ID, FileName: filepath.Base(job.Path), Err: err})
}

// assetReady fires when the poller sees a tracked asset reach its
// terminal state.
func (c *Controller) assetReady(a asset.Asset) {
	if c.catalog.ApplyUpdate(a) {
		c.emitCatalog()
	}
	c.emit(AssetReady{Asset: a})
}

// ItemActivated applies a click gesture with the given modifiers.
func (c *Controller) ItemActivated(id string, mods Modifiers) {
	c.selection.Click(c.catalog.IDs(), id, mods)
	c.emitSelection()
}

// ItemDoubleActivated requests the detail view for one asset without
// touching the selection.
func (c *Controller) ItemDoubleActivated(id string) {
	c.emit(InspectRequested{ID: id})
}

// SelectAll selects every listed asset.
func (c *Controller) SelectAll() {
	c.selection.SelectAll(c.catalog.IDs())
	c.emitSelection()
}

// DeselectAll clears the selection and the range anchor.
func (c *Controller) DeselectAll() {
	c.selection.Clear()
	c.emitSelection()
}

// DeleteSelected issues one batched delete for the current selection.
// It disables itself while the call is outstanding so repeated key
// presses cannot fire duplicates, and evicts exactly the ids the
// server confirms as deleted.
func (c *Controller) DeleteSelected(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.deleting {
		c.mu.Unlock()
		return nil
	}
	c.deleting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.deleting = false
		c.mu.Unlock()
	}()

	ids := c.selection.InOrder(c.catalog.IDs())
	if len(ids) == 0 {
		return nil
	}

	deleted, err := c.client.Delete(ctx, ids)
	if err != nil {
		c.emit(DeleteFailed{Err: err})
		return err
	}

	for _, id := range deleted {
		c.poller.Untrack(id)
	}
	c.catalog.Remove(deleted)
	c.selection.ReconcileWith(c.catalog.IDs())
	c.emitCatalog()
	c.emitSelection()
	return nil
}

// Items returns the catalog's current ordered assets.
func (c *Controller) Items() []asset.Asset { return c.catalog.Items() }

// SelectedIDs returns the selection in catalog order.
func (c *Controller) SelectedIDs() []string {
	return c.selection.InOrder(c.catalog.IDs())
}

// Counts returns the total asset count and the per-kind tallies from
// the last server response, adjusted for local uploads and deletes.
func (c *Controller) Counts() (int, map[asset.Kind]int) { return c.catalog.Counts() }

// Filter returns the active kind restriction.
func (c *Controller) Filter() asset.Kind { return c.catalog.Filter() }

// Close tears the instance down deterministically: poll timers are
// cancelled, in-flight work is awaited, and subscribers are released,
// so repeated open/close cycles accumulate nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.poller.Close()
	c.wg.Wait()

	c.mu.Lock()
	c.subs = make(map[int]func(Event))
	c.mu.Unlock()
}

func (c *Controller) emitCatalog() {
	total, byKind := c.catalog.Counts()
	c.emit(CatalogChanged{Items: c.catalog.Items(), TotalCount: total, Counts: byKind})
}

func (c *Controller) emitSelection() {
	c.emit(SelectionChanged{IDs: c.selection.InOrder(c.catalog.IDs())})
}
