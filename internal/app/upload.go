package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nordskill/medialib/internal/asset"
	"github.com/nordskill/medialib/internal/library"
	"github.com/nordskill/medialib/internal/util"
)

// watchDebounce is how long a file must be quiet before a watch-mode
// upload fires. Editors and downloads produce bursts of write events.
const watchDebounce = 500 * time.Millisecond

func newUploadCmd() *cobra.Command {
	var (
		flagWait  bool
		flagWatch bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file|dir>...",
		Short: "Upload images and videos to the library",
		Long: `Upload sends each file through the upload pipeline: the media kind
is determined locally, dimensions and duration are extracted before
transfer, and files proceed independently so one failure never blocks
the rest. Unsupported file types are skipped.

With --watch, the given directories are monitored and new media files
are uploaded as they appear, until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagWatch {
				return watchAndUpload(cmd.Context(), args, flagWait)
			}
			paths, err := expandPaths(args)
			if err != nil {
				return err
			}
			return uploadBatch(cmd.Context(), paths, flagWait)
		},
	}

	cmd.Flags().BoolVarP(&flagWait, "wait", "w", false, "Block until server-side optimization finishes")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch directories and upload new files as they appear")
	return cmd
}

// expandPaths resolves directory arguments to the files directly inside
// them. The pipeline drops unsupported types itself.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !fi.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}
	return paths, nil
}

// uploadBatch runs one pipeline batch, printing per-file outcomes. With
// wait enabled it keeps polling stored assets until each one leaves
// processing.
func uploadBatch(ctx context.Context, paths []string, wait bool) error {
	var (
		mu       sync.Mutex
		failures int
		trackWG  sync.WaitGroup
		poller   *library.Poller
	)

	if wait {
		interval := cfg.Upload.EffectivePollInterval(library.DefaultPollInterval)
		poller = library.NewPoller(client, interval, func(a asset.Asset) {
			ok("%s optimized", a.DisplayName())
			trackWG.Done()
		}, logger)
		defer poller.Close()
	}

	onStored := func(a asset.Asset) {
		ok("uploaded %s (%s)", a.DisplayName(), a.Status)
		if wait && !a.Status.Terminal() {
			trackWG.Add(1)
			poller.Track(a)
		}
	}
	onFailed := func(job library.Job, err error) {
		mu.Lock()
		failures++
		mu.Unlock()
		warn("%s: %v", filepath.Base(job.Path), err)
	}

	pl := library.NewPipeline(client, nil, cfg.Upload.EffectiveConcurrency(library.DefaultUploadWorkers), onStored, onFailed, logger)
	pl.Submit(ctx, paths)

	if wait {
		trackWG.Wait()
	}

	mu.Lock()
	defer mu.Unlock()
	if failures > 0 {
		return fmt.Errorf("%d upload(s) failed", failures)
	}
	return nil
}

// watchAndUpload monitors directories and uploads files after they go
// quiet. Content hashes weed out duplicate events for the same save.
func watchAndUpload(ctx context.Context, dirs []string, wait bool) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		fi, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("stat %s: %w", dir, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		header("watching %s", dir)
	}

	var (
		mu     sync.Mutex
		timers = make(map[string]*time.Timer)
		seen   = make(map[string]bool) // content hashes already uploaded
		wg     sync.WaitGroup
	)

	upload := func(path string) {
		defer wg.Done()

		hash, err := util.SHA256File(path)
		if err != nil {
			logger.Debug("hashing watched file", zap.String("path", path), zap.Error(err))
			return
		}
		mu.Lock()
		if seen[hash] {
			mu.Unlock()
			return
		}
		seen[hash] = true
		mu.Unlock()

		if err := uploadBatch(ctx, []string{path}, wait); err != nil {
			warn("%s: %v", filepath.Base(path), err)
		}
	}

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := timers[path]; ok {
			t.Stop()
		}
		timers[path] = time.AfterFunc(watchDebounce, func() {
			wg.Add(1)
			go upload(path)
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			for _, t := range timers {
				t.Stop()
			}
			mu.Unlock()
			wg.Wait()
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				wg.Wait()
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			ext := strings.TrimPrefix(filepath.Ext(ev.Name), ".")
			if _, supported := asset.KindForExtension(ext); !supported {
				continue
			}
			schedule(ev.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				wg.Wait()
				return nil
			}
			warn("watch error: %v", err)
		}
	}
}
