package gen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch runs a pass, then another one whenever Go sources below the working
// directory settle after a change. Failed passes are reported and watching
// continues.
func (c *Cmd) watch(ctx context.Context, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to initialize fsnotify: %w", err)
	}
	defer w.Close()

	root := c.Dir
	if root == "" {
		root = "."
	}
	if err := addTree(w, root); err != nil {
		return err
	}

	run := func() {
		if err := c.generate(ctx, logger); err != nil && ctx.Err() == nil {
			logger.Error("generation failed", slog.Any("error", err))
		}
	}
	run()
	logger.Info("watching for changes", slog.String("dir", root))

	// settled fires once no relevant event arrived for c.Debounce.
	var settled <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDir(filepath.Base(ev.Name)) {
					if err := addTree(w, ev.Name); err != nil {
						logger.Warn("failed to watch directory", slog.String("dir", ev.Name), slog.Any("error", err))
					}
				}
			}
			if !c.relevant(ev) {
				continue
			}
			logger.Debug("change", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			settled = time.After(c.Debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		case <-settled:
			settled = nil
			run()
		}
	}
}

// relevant reports whether ev can change the outcome of a pass. Files the
// generator writes itself are ignored so a pass does not trigger the next one.
func (c *Cmd) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	if name == "go.mod" || name == "go.work" {
		return true
	}
	if filepath.Ext(name) != ".go" || strings.HasPrefix(name, ".") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	if c.Output != "" {
		return name != c.Output
	}
	return !strings.HasSuffix(name, "_fasttostring.go")
}

// addTree watches dir and every directory below it the go command would visit.
func addTree(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor" || name == "node_modules"
}
