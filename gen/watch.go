package gen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch generates once, then regenerates on every change to the
// definition file until the context is canceled. A failed generation is
// logged and the watch keeps running, so a half-edited definition does
// not kill the loop.
//
// Editors commonly save by writing a temporary file and renaming it
// over the original, so the watch covers the parent directory and
// filters events on the file name.
func Watch(ctx context.Context, defPath string, opts ...Option) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("quill: watch: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(defPath)); err != nil {
		return fmt.Errorf("quill: watch %s: %w", defPath, err)
	}

	regenerate(ctx, defPath, opts)

	name := filepath.Base(defPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			regenerate(ctx, defPath, opts)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("definition watch error", "definition", defPath, "error", err)
		}
	}
}

func regenerate(ctx context.Context, defPath string, opts []Option) {
	if err := Generate(ctx, defPath, opts...); err != nil {
		slog.Error("generation failed", "definition", defPath, "error", err)
		return
	}
	slog.Info("generated", "definition", defPath)
}
