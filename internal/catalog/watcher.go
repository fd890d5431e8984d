package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// ChangeCallback receives the data files (relative to the data root) that
// changed during one debounce window, sorted.
type ChangeCallback func(changed []string)

// Watch observes the directories holding files and calls cb once writes to
// any of them have settled. Editors that save by rename are handled because
// the parent directory is watched rather than the file itself. It returns
// when ctx is cancelled.
func Watch(ctx context.Context, root string, files Files, debounce time.Duration, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watched := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range files.Paths() {
		rel := filepath.Clean(p)
		watched[rel] = struct{}{}
		dirs[filepath.Join(root, filepath.Dir(rel))] = struct{}{}
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}

	logger.Info("watcher: started", slog.String("root", root))

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			fire = nil
			logger.Debug("watcher: change settled", slog.Any("files", changed))
			if cb != nil {
				cb(changed)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			rel, relErr := filepath.Rel(root, ev.Name)
			if relErr != nil {
				continue
			}
			if _, ok := watched[rel]; !ok {
				continue
			}
			logger.Debug("watcher: event", slog.String("path", rel), slog.String("op", ev.Op.String()))
			pending[rel] = struct{}{}
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
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
