package watcher

import (
	"time"

	"github.com/mvp-joe/jones/internal/navigation"
)

// ForDiscovery returns options that watch exactly what d would search: files
// it includes, outside directories it ignores.
func ForDiscovery(d *navigation.Discovery, debounce time.Duration) Options {
	return Options{
		Match: func(path string) bool {
			rel, ok := d.Rel(path)
			return ok && d.Matches(rel)
		},
		SkipDir: func(path string) bool {
			rel, ok := d.Rel(path)
			return ok && rel != "." && d.Ignored(rel)
		},
		Debounce: debounce,
	}
}
