// Package watch reports changes to a single file on disk.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long File waits after the last event for a path
// before calling onChange. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// File watches path until ctx is cancelled and calls onChange after the
// file is written, created or replaced. The parent directory is watched
// rather than the file itself so that atomic saves (write temp, rename
// over) keep being reported.
func File(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, onChange func(path string)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Debug("watch: started", slog.String("path", abs))

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch: stopped", slog.String("path", abs))
			return nil

		case <-fire:
			fire = nil
			onChange(abs)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: error", slog.String("path", abs), slog.String("error", watchErr.Error()))
		}
	}
}
