package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watch runs a pass, then another whenever a PHP source or the mapping
// file changes, until ctx is done. Bursts of events within debounce
// trigger a single pass. report receives the outcome of every pass; a
// failing pass does not stop watching.
func (p *Pipeline) Watch(ctx context.Context, debounce time.Duration, report func(*Result, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	err = p.addWatches(watcher, p.cfg.Source)
	if err != nil {
		return err
	}

	mappingDir := filepath.Dir(p.cfg.Mapping)

	err = watcher.Add(mappingDir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", mappingDir, err)
	}

	report(p.Run(ctx))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			trigger := p.relevant(ev)

			// Files may land in a new directory before it is watched, so a
			// new directory triggers a pass by itself.
			if ev.Has(fsnotify.Create) && p.newDirectory(watcher, ev.Name) {
				trigger = true
			}

			if !trigger {
				continue
			}

			p.log.Debug("change detected", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			p.log.Warn("watch error", slog.Any("error", err))

		case <-fire:
			fire = nil

			report(p.Run(ctx))
		}
	}
}

// addWatches watches root and every directory below it that discovery
// would descend into.
func (p *Pipeline) addWatches(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		if path != p.cfg.Source && !p.watchable(path) {
			return filepath.SkipDir
		}

		err = w.Add(path)
		if err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}

		return nil
	})
}

// newDirectory watches path when it is a new source directory and reports
// whether it was one.
func (p *Pipeline) newDirectory(w *fsnotify.Watcher, path string) bool {
	if _, ok := insideSource(p.cfg, path); !ok || !p.watchable(path) {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	err = p.addWatches(w, path)
	if err != nil {
		p.log.Warn("failed to watch new directory", slog.String("path", path), slog.Any("error", err))
	}

	return true
}

// watchable reports whether dir is a source directory worth watching:
// not hidden and not the output tree.
func (p *Pipeline) watchable(dir string) bool {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return false
	}

	return !p.inOutput(dir)
}

func (p *Pipeline) inOutput(path string) bool {
	out, err := filepath.Abs(p.cfg.Output)
	if err != nil {
		return false
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(out, abs)

	return err == nil && (rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))))
}

// relevant reports whether ev should trigger a pass.
func (p *Pipeline) relevant(ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return false
	}

	if sameFile(ev.Name, p.cfg.Mapping) {
		return true
	}

	if !strings.EqualFold(filepath.Ext(ev.Name), ".php") || p.inOutput(ev.Name) {
		return false
	}

	rel, ok := insideSource(p.cfg, ev.Name)

	return ok && !p.filter.Excluded(rel)
}

func sameFile(a, b string) bool {
	a, errA := filepath.Abs(a)
	b, errB := filepath.Abs(b)

	return errA == nil && errB == nil && a == b
}
