package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/graphscope/internal/core/domain"
	"github.com/custodia-labs/graphscope/internal/logger"
)

// Reload reports the outcome of reloading after the file changed.
// On error Config holds the configuration still in effect.
type Reload struct {
	Config domain.AppConfig
	Err    error
}

// Watch reloads the configuration whenever the file changes and reports
// each reload on the returned channel until ctx is cancelled.
// The parent directory is watched so editors that replace the file by
// rename are picked up.
func (s *ConfigStore) Watch(ctx context.Context) (<-chan Reload, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	reloads := make(chan Reload, 1)

	go func() {
		defer close(reloads)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !s.handleEvent(event) {
					continue
				}
				err := s.Load()
				if err != nil {
					logger.Warn("Config reload failed: %v", err)
				} else {
					logger.Info("Config reloaded from %s", s.filePath)
				}
				select {
				case reloads <- Reload{Config: s.Config(), Err: err}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Config watcher error: %v", err)
			}
		}
	}()

	return reloads, nil
}

// handleEvent reports whether event should trigger a reload.
func (s *ConfigStore) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
