package host

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"desktopcleaner/internal/scan"
)

const DefaultDebounce = 2 * time.Second

// Watch rescans the desktop after it changes. Bursts of events within
// debounce collapse into one scan. It returns when ctx ends.
func (h *Local) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	if err := w.Add(h.desktop); err != nil {
		return errors.Wrapf(err, "watch %s", h.desktop)
	}
	h.log.Info("watching desktop", zap.String("dir", h.desktop), zap.Duration("debounce", debounce))

	// Reset never delivers a stale tick since Go 1.23.
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !h.relevant(ev) {
				continue
			}
			h.log.Debug("desktop changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case <-timer.C:
			h.ScanDesktop()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			h.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (h *Local) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
		return false
	}
	return !scan.Ignored(filepath.Base(ev.Name), h.ignore())
}
