// Manifest directory watching for cache invalidation.
package catalog

import (
	"github.com/fsnotify/fsnotify"
	"github.com/vinayprograms/agentkit/logging"
)

// Watcher invalidates a registry's cache when any watched manifest
// directory changes. Watch errors never propagate to planning; they are
// logged and the cache simply stays warm.
type Watcher struct {
	registry *Registry
	watcher  *fsnotify.Watcher
	logger   *logging.Logger
	done     chan struct{}
}

// NewWatcher starts watching the registry's manifest directories. Paths
// that do not exist yet are skipped; call ClearCache manually after
// creating them.
func NewWatcher(r *Registry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		registry: r,
		watcher:  fsw,
		logger:   logging.New().WithComponent("catalog-watcher"),
		done:     make(chan struct{}),
	}

	for _, dir := range append(append([]string{}, r.skillPaths...), r.subagentPaths...) {
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory", map[string]interface{}{
				"dir":   dir,
				"error": err.Error(),
			})
		}
	}

	go w.run()
	return w, nil
}

// run drains watcher events until Close.
func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.logger.Debug("manifest change detected", map[string]interface{}{
					"path": event.Name,
					"op":   event.Op.String(),
				})
				w.registry.ClearCache()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", map[string]interface{}{"error": err.Error()})
		case <-w.done:
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
