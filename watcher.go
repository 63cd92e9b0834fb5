package main

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchConfig watches the config file while the server runs and logs when it
// changes on disk. The loaded configuration is immutable for the process
// lifetime, so this never reloads anything; it only tells the operator the
// running daemon is now stale.
func watchConfig(path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config file watcher: %w", err)
	}

	defer func() {
		if err := w.Close(); err != nil {
			slog.Error("closing config file watcher", "error", err)
		}
	}()

	// Watch the directory, not the file: editors that write via rename
	// would otherwise drop the watch.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("adding config directory to watcher: %w", err)
	}

	var lastHash [32]byte
	if h, err := fileHash(path); err == nil {
		lastHash = h
	}

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if event.Name != path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				h, err := fileHash(path)
				if err != nil {
					continue
				}

				if h == lastHash {
					slog.Debug("config watcher: contents unchanged")
					continue
				}
				lastHash = h

				slog.Warn("config file changed on disk; restart hyprdock to apply it", "file", path)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("config watcher: %w", err)
		}
	}
}

func fileHash(path string) ([32]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}
