package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"devblog/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

const DefaultReloadDebounce = 500 * time.Millisecond

// WatchContent reloads lib from dir whenever files under it change, until
// ctx ends. Bursts of events within debounce trigger a single reload. A
// reload that fails keeps the previous Store.
func WatchContent(ctx context.Context, dir string, lib *Library, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = DefaultReloadDebounce
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warnf("content: watch %s: %v", event.Name, err)
					}
				}
			}
			logger.Debugf("content: %s %s", event.Op, event.Name)
			pending = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("content: watcher error: %v", err)
		case <-pending:
			pending = nil
			reloadLibrary(dir, lib)
		}
	}
}

func reloadLibrary(dir string, lib *Library) {
	store, err := LoadStore(os.DirFS(dir), ".")
	if err != nil {
		logger.Errorf("content: reload failed, keeping %d articles: %v", lib.Store().Len(), err)
		return
	}
	lib.Swap(store)
	logger.Infof("content: reloaded %d articles", store.Len())
}
