package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk and hands the
// result to the frame loop over Updates. The frame loop stays the only
// writer of engine state; it drains Updates between frames.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	updates  chan *Config
	debounce time.Duration

	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewWatcher watches the directory containing path. Editors often replace
// files on save, so the directory is watched rather than the file itself.
func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watching config: empty path")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		updates:  make(chan *Config, 1),
		debounce: 150 * time.Millisecond,
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates delivers freshly loaded configs. Only the newest pending config
// is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Start runs the event loop in a goroutine until ctx is cancelled or Stop
// is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop closes the underlying watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			slog.Warn("closing config watcher", "error", err)
		}
	})
	<-w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.stopOnce.Do(func() { w.watcher.Close() })
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				// Debounce rapid saves into one reload
				pending = time.After(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Keep running on the last good config
		slog.Warn("config reload rejected", "path", w.path, "error", err)
		return
	}
	slog.Info("config reloaded", "path", w.path, "skin", cfg.Status.Skin)

	// Replace any unconsumed update with the newer one
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
