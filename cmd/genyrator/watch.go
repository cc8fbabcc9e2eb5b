package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turner-townsend/genyrator/compiler/load"
)

// watcher reruns a build whenever schema files of dir change. Bursts of
// events are collapsed into one run after the debounce delay.
type watcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	// ready is closed once the directory is watched.
	ready chan struct{}
}

// run builds once, then on every change until ctx is done. Build errors are
// logged and do not stop the watch.
func (w *watcher) run(ctx context.Context, build func(context.Context) error) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if w.ready != nil {
		close(w.ready)
	}
	w.build(ctx, build)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.logger.Debug("schema changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		case <-timer.C:
			w.build(ctx, build)
		}
	}
}

func (w *watcher) build(ctx context.Context, build func(context.Context) error) {
	start := time.Now()
	if err := build(ctx); err != nil {
		w.logger.Error("build failed", "error", err)
		return
	}
	w.logger.Info("build succeeded", "duration", time.Since(start))
}

// relevant reports if ev changes a schema file.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(load.Extensions, strings.ToLower(filepath.Ext(ev.Name)))
}
