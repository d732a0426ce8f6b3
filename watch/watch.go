// Package watch re-runs a callback when matching files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tmplexpr.watch")

// Watch watches dirs and their subdirectories until ctx is done. For every
// write or create of a file accepted by match, fn is called with its path.
// Errors from fn are logged and do not stop watching.
func Watch(ctx context.Context, dirs []string, match func(path string) bool, fn func(path string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			log.Warningf("skipping %s: %s", dir, err)
			continue
		}

		if err := addTree(watcher, dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						log.Errorf("failed to watch %s: %s", event.Name, err)
					}

					continue
				}
			}

			if !match(event.Name) {
				continue
			}

			log.Infof("file changed: %s", event.Name)

			if err := fn(event.Name); err != nil {
				log.Errorf("%s: %s", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Errorf("watcher error: %s", err)
		}
	}
}

// Extensions returns a match function accepting the given file extensions.
func Extensions(exts ...string) func(path string) bool {
	return func(path string) bool {
		ext := filepath.Ext(path)
		for _, want := range exts {
			if strings.EqualFold(ext, want) {
				return true
			}
		}

		return false
	}
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}

			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if path != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}

		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}

		log.Debugf("watching %s", path)

		return nil
	})
}
