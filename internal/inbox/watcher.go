package inbox

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch imports files as they are created or written under the inbox root
// until ctx is cancelled. Removing or renaming a file leaves its note alone.
// New directories are added to the watch list and scanned.
func (im *Importer) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, im.root); err != nil {
		return err
	}

	im.log.Info("watcher: started", slog.String("root", im.root))

	for {
		select {
		case <-ctx.Done():
			im.log.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						im.log.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					if scanErr := im.scanDir(ctx, ev.Name); scanErr != nil {
						im.log.Warn("watcher: scan new dir failed", slog.String("path", ev.Name), slog.String("error", scanErr.Error()))
					}
					continue
				}
			}

			if !Eligible(ev.Name) {
				continue
			}
			if _, impErr := im.ImportFile(ctx, ev.Name); impErr != nil {
				im.log.Warn("watcher: import failed", slog.String("path", ev.Name), slog.String("error", impErr.Error()))
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			im.log.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
