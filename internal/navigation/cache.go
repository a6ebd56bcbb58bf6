package navigation

import (
	"os"
	"time"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/jones/internal/chapter"
)

// ParsedFile is a source file together with its context tree.
type ParsedFile struct {
	Path   string
	Source string
	Tree   *chapter.Tree

	modTime time.Time
	size    int64
}

// fresh reports whether the cached entry still describes the file on disk.
func (pf *ParsedFile) fresh(info os.FileInfo) bool {
	return pf.size == info.Size() && pf.modTime.Equal(info.ModTime())
}

// treeCache keeps parsed files keyed by path. A nil cache stores nothing.
type treeCache struct {
	cache otter.Cache[string, *ParsedFile]
}

// newTreeCache creates a cache holding up to capacity files. A capacity of
// zero disables caching.
func newTreeCache(capacity int) (*treeCache, error) {
	if capacity <= 0 {
		return nil, nil
	}

	cache, err := otter.MustBuilder[string, *ParsedFile](capacity).Build()
	if err != nil {
		return nil, err
	}
	return &treeCache{cache: cache}, nil
}

func (c *treeCache) get(path string, info os.FileInfo) (*ParsedFile, bool) {
	if c == nil {
		return nil, false
	}
	pf, ok := c.cache.Get(path)
	if !ok {
		return nil, false
	}
	if !pf.fresh(info) {
		c.cache.Delete(path)
		return nil, false
	}
	return pf, true
}

func (c *treeCache) put(pf *ParsedFile) {
	if c == nil {
		return
	}
	c.cache.Set(pf.Path, pf)
}

func (c *treeCache) invalidate(path string) {
	if c == nil {
		return
	}
	c.cache.Delete(path)
}

func (c *treeCache) close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
