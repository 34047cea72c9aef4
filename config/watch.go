package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a tunables file whenever it is written and hands every
// valid result to a callback. Invalid edits are logged and skipped, so the
// last good tunables stay in effect.
//
// Start should only be called once.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Tunables)
	logger   *slog.Logger
}

// NewWatcher watches the directory holding path, which also catches
// editors that save by rename. A nil logger selects slog.Default.
func NewWatcher(path string, onChange func(Tunables), logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: filepath.Clean(path), watcher: w, onChange: onChange, logger: logger}, nil
}

// Start blocks until ctx is done or the watcher is closed.
//
//	w, _ := config.NewWatcher(path, apply, nil)
//	go w.Start(ctx)
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config: watcher error", slog.Any("error", err))

		case <-ctx.Done():
			return
		}
	}
}

// handleEvent reloads on writes and creates of the watched file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	t, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config: reload rejected", slog.String("path", w.path), slog.Any("error", err))
		return
	}
	w.logger.Info("config: reloaded", slog.String("path", w.path))
	if w.onChange != nil {
		w.onChange(t)
	}
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
