package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ItsNotGoodName/touchwm/internal/bus"
	"github.com/fsnotify/fsnotify"
)

// EventConfigChanged is published when the config file changes on disk.
type EventConfigChanged struct {
	Config Config
}

func NewWatcher(store Store, filePath string) Watcher {
	return Watcher{
		store:    store,
		filePath: filePath,
	}
}

// Watcher publishes EventConfigChanged when the config file is rewritten.
type Watcher struct {
	store    Store
	filePath string
}

func (Watcher) String() string {
	return "config.Watcher"
}

func (w Watcher) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, editors replace the file on save.
	if err := watcher.Add(filepath.Dir(w.filePath)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			return err
		case event := <-watcher.Events:
			if event.Name != w.filePath {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			cfg, err := w.store.GetConfig()
			if err != nil {
				slog.Error("Failed to reload config", "error", err)
				continue
			}

			slog.Info("Config changed", "file", w.filePath)
			bus.Publish(EventConfigChanged{Config: cfg})
		}
	}
}
