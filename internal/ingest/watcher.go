package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/antoinebou12/horaire-ets/internal/course"
)

// watchDebounce coalesces bursts of filesystem events (editors often
// write a file several times in quick succession) into a single reload.
const watchDebounce = 500 * time.Millisecond

// Watcher republishes the catalogue when the data file changes on disk.
type Watcher struct {
	path     string
	provider *course.Provider
	logger   *slog.Logger
}

// NewWatcher creates a watcher for the given catalogue file.
func NewWatcher(path string, provider *course.Provider, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: path, provider: provider, logger: logger}
}

// Run watches the catalogue file until the context is cancelled. The
// parent directory is watched (not the file itself) so atomic
// rename-into-place saves are seen too.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	scheduleReload := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
	}

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				scheduleReload()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch_error", slog.String("error", err.Error()))

		case <-reload:
			if _, err := LoadAndPublish(w.path, w.provider, w.logger); err != nil {
				w.logger.Error("catalogue_reload_failed",
					slog.String("path", w.path),
					slog.String("error", err.Error()))
			}
		}
	}
}
