package watcher

import (
	"context"
	"log"
)

// WatchCoordinator routes debounced file changes to a cache and re-runs the
// watched operation.
type WatchCoordinator struct {
	files FileWatcher
	cache Invalidator
	run   RunFunc
}

// NewWatchCoordinator creates a new watch coordinator. cache may be nil.
func NewWatchCoordinator(files FileWatcher, cache Invalidator, run RunFunc) *WatchCoordinator {
	return &WatchCoordinator{
		files: files,
		cache: cache,
		run:   run,
	}
}

// Start begins routing file changes. Blocks until ctx is cancelled, then
// stops the file watcher and returns ctx.Err().
func (c *WatchCoordinator) Start(ctx context.Context) error {
	if err := c.files.Start(ctx, func(files []string) {
		c.handleFileChange(ctx, files)
	}); err != nil {
		c.cleanup()
		return err
	}

	<-ctx.Done()
	c.cleanup()
	return ctx.Err()
}

func (c *WatchCoordinator) cleanup() {
	if err := c.files.Stop(); err != nil {
		log.Printf("Warning: file watcher stop failed: %v", err)
	}
}

// handleFileChange invalidates the changed files and runs again. Changes
// arriving while the run is in progress are held until it finishes.
func (c *WatchCoordinator) handleFileChange(ctx context.Context, files []string) {
	if len(files) == 0 || ctx.Err() != nil {
		return
	}

	c.files.Pause()
	defer c.files.Resume()

	if c.cache != nil {
		for _, file := range files {
			c.cache.Invalidate(file)
		}
	}

	if err := c.run(ctx, files); err != nil && ctx.Err() == nil {
		log.Printf("Warning: search after %d change(s) failed: %v", len(files), err)
	}
}
