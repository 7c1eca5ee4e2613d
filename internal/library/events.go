package library

import "github.com/nordskill/medialib/internal/asset"

// Event is a notification emitted by a Controller to its subscribers.
// Events are scoped to the emitting instance; independent controllers
// never see each other's traffic.
type Event interface{ event() }

// CatalogChanged reports that the ordered item list or the counters
// changed: a page was loaded, an upload landed, items were deleted, or
// the filter switched.
type CatalogChanged struct {
	Items      []asset.Asset
	TotalCount int
	Counts     map[asset.Kind]int
}

// SelectionChanged reports the new selection after a gesture or an
// eviction. IDs are in catalog order.
type SelectionChanged struct {
	IDs []string
}

// UploadFailed reports one file of an upload batch that did not make
// it; sibling uploads are unaffected.
type UploadFailed struct {
	JobID    string
	FileName string
	Err      error
}

// AssetReady reports that a tracked asset finished server-side
// optimization and can be rendered in full.
type AssetReady struct {
	Asset asset.Asset
}

// DeleteFailed reports a failed bulk delete; the catalog and selection
// are left untouched.
type DeleteFailed struct {
	Err error
}

// InspectRequested asks the embedding application to open its detail
// view for one asset. Selection is not affected.
type InspectRequested struct {
	ID string
}

func (CatalogChanged) event()   {}
func (SelectionChanged) event() {}
func (UploadFailed) event()     {}
func (AssetReady) event()       {}
func (DeleteFailed) event()     {}
func (InspectRequested) event() {}
