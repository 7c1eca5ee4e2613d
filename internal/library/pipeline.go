package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nordskill/medialib/internal/api"
	"github.com/nordskill/medialib/internal/asset"
	"github.com/nordskill/medialib/internal/probe"
)

// DefaultUploadWorkers bounds how many uploads run at once. The
// upstream design fanned out without a cap; a fixed pool keeps a large
// file drop from exhausting sockets and memory.
const DefaultUploadWorkers = 4

// Prober extracts local metadata from a file prior to upload.
type Prober func(path string, kind asset.Kind) (probe.Meta, error)

// Job is one file making its way through the upload pipeline.
type Job struct {
	ID   string
	Path string
	Kind asset.Kind
}

// Pipeline submits local files as independent uploads: classify by
// media type, decode locally for dimensions/duration, then POST. Files
// proceed independently — one file's failure never blocks another —
// and a batch of N files yields between 0 and N stored assets.
type Pipeline struct {
	client   APIClient
	probe    Prober
	workers  int
	onStored func(asset.Asset)
	onFailed func(job Job, err error)
	log      *zap.Logger
}

// NewPipeline creates a pipeline reporting per-file outcomes through
// the two callbacks.
func NewPipeline(client APIClient, prober Prober, workers int, onStored func(asset.Asset), onFailed func(Job, error), log *zap.Logger) *Pipeline {
	if prober == nil {
		prober = probe.File
	}
	if workers <= 0 {
		workers = DefaultUploadWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		client:   client,
		probe:    prober,
		workers:  workers,
		onStored: onStored,
		onFailed: onFailed,
		log:      log,
	}
}

// Submit classifies the given files and uploads the supported ones,
// blocking until the whole batch has settled. Unsupported media types
// are dropped silently, matching the upstream behavior. Callers that
// must not block run Submit on its own goroutine.
func (pl *Pipeline) Submit(ctx context.Context, paths []string) {
	jobs := pl.classify(paths)
	if len(jobs) == 0 {
		return
	}

	sem := make(chan struct{}, pl.workers)
	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			pl.run(ctx, job)
		}(job)
	}
	wg.Wait()
}

// classify maps paths to upload jobs, skipping unsupported types.
func (pl *Pipeline) classify(paths []string) []Job {
	var jobs []Job
	for _, path := range paths {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		kind, ok := asset.KindForExtension(ext)
		if !ok {
			pl.log.Debug("skipping unsupported file", zap.String("path", path))
			continue
		}
		jobs = append(jobs, Job{ID: uuid.NewString(), Path: path, Kind: kind})
	}
	return jobs
}

// run carries one job through decode and upload.
func (pl *Pipeline) run(ctx context.Context, job Job) {
	meta, err := pl.probe(job.Path, job.Kind)
	if err != nil {
		pl.fail(job, err)
		return
	}

	f, err := os.Open(job.Path)
	if err != nil {
		pl.fail(job, err)
		return
	}
	defer func() { _ = f.Close() }()

	fileData := api.FileData{
		Name:   meta.Name,
		Width:  meta.Width,
		Height: meta.Height,
	}
	if job.Kind == asset.KindVideo {
		fileData.Duration = meta.Duration
	}

	stored, err := pl.client.Create(ctx, filepath.Base(job.Path), f, fileData)
	if err != nil {
		pl.fail(job, err)
		return
	}

	pl.log.Info("upload stored",
		zap.String("job", job.ID),
		zap.String("asset", stored.ID),
		zap.String("status", string(stored.Status)))
	if pl.onStored != nil {
		pl.onStored(*stored)
	}
}

func (pl *Pipeline) fail(job Job, err error) {
	pl.log.Warn("upload failed", zap.String("job", job.ID), zap.String("path", job.Path), zap.Error(err))
	if pl.onFailed != nil {
		pl.onFailed(job, err)
	}
}
