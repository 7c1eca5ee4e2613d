package library_test

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/nordskill/medialib/internal/api"
	"github.com/nordskill/medialib/internal/asset"
)

// fakeAPI is a scriptable in-process stand-in for the remote asset API.
type fakeAPI struct {
	mu        sync.Mutex
	listCalls int
	getCalls  map[string]int
	listFn    func(kind asset.Kind, page int) (*api.ListResult, error)
	getFn     func(id string, call int) (*asset.Asset, error)
	createFn  func(fileName string, meta api.FileData) (*asset.Asset, error)
	deleteFn  func(ids []string) ([]string, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{getCalls: make(map[string]int)}
}

func (f *fakeAPI) List(_ context.Context, kind asset.Kind, page int) (*api.ListResult, error) {
	f.mu.Lock()
	f.listCalls++
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return &api.ListResult{}, nil
	}
	return fn(kind, page)
}

func (f *fakeAPI) Get(_ context.Context, id string) (*asset.Asset, error) {
	f.mu.Lock()
	f.getCalls[id]++
	call := f.getCalls[id]
	fn := f.getFn
	f.mu.Unlock()
	if fn == nil {
		return nil, api.ErrNotFound
	}
	return fn(id, call)
}

func (f *fakeAPI) Create(_ context.Context, fileName string, content io.Reader, meta api.FileData) (*asset.Asset, error) {
	if content != nil {
		_, _ = io.Copy(io.Discard, content)
	}
	f.mu.Lock()
	fn := f.createFn
	f.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("create not scripted")
	}
	return fn(fileName, meta)
}

func (f *fakeAPI) Delete(_ context.Context, ids []string) ([]string, error) {
	f.mu.Lock()
	fn := f.deleteFn
	f.mu.Unlock()
	if fn == nil {
		return ids, nil
	}
	return fn(ids)
}

func (f *fakeAPI) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeAPI) getCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls[id]
}

// page builds a ListResult holding assets with the given ids.
func page(total int, kind asset.Kind, ids ...string) *api.ListResult {
	res := &api.ListResult{TotalCount: total}
	for _, id := range ids {
		res.Files = append(res.Files, asset.Asset{
			ID:     id,
			Kind:   kind,
			Status: asset.StatusOptimized,
			Name:   id,
		})
	}
	res.CountsByType = []api.KindCount{{Kind: kind, Count: total}}
	return res
}
