package watcher

import "context"

// FileWatcher monitors Python sources for changes with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching, calling callback with debounced, sorted file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
	Resume()
}

// Invalidator forgets what it knows about a changed file.
type Invalidator interface {
	Invalidate(path string)
}

// RunFunc repeats the watched operation, typically a search, after files change.
type RunFunc func(ctx context.Context, changed []string) error
