// Package navigation finds Python classes across a project tree. It walks the
// configured sources, parses each file into a context tree and matches Class
// nodes by name.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mvp-joe/jones/internal/chapter"
	"github.com/mvp-joe/jones/internal/config"
	"github.com/mvp-joe/jones/internal/extractors"
	"golang.org/x/sync/errgroup"
)

// ErrClassNotFound is returned by FindClass when no file defines the class.
var ErrClassNotFound = errors.New("class not found")

// ClassMatch is one class whose name matched a search keyword.
type ClassMatch struct {
	Name   string       `json:"name"`
	Path   string       `json:"path"`
	Span   chapter.Span `json:"span"`
	Public bool         `json:"public"`
}

// SearchOptions tunes a single SmartSearch call.
type SearchOptions struct {
	// Nested also matches classes defined inside other classes or functions.
	Nested bool
}

// Options configures a Searcher.
type Options struct {
	Root      string
	Include   []string
	Ignore    []string
	Engine    string
	Workers   int
	CacheSize int
	Progress  ProgressReporter
}

// Searcher runs class searches over one project root. It is safe for
// concurrent use; parsed trees are cached between calls.
type Searcher struct {
	discovery *Discovery
	engine    Engine
	cache     *treeCache
	workers   int
	progress  ProgressReporter
	progMu    sync.Mutex
}

// NewSearcher creates a searcher from explicit options.
func NewSearcher(opts Options) (*Searcher, error) {
	discovery, err := NewDiscovery(opts.Root, opts.Include, opts.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	engine, err := NewEngine(opts.Engine)
	if err != nil {
		return nil, err
	}

	cache, err := newTreeCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create parse cache: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	progress := opts.Progress
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}

	return &Searcher{
		discovery: discovery,
		engine:    engine,
		cache:     cache,
		workers:   workers,
		progress:  progress,
	}, nil
}

// FromConfig creates a searcher for root using a loaded configuration.
func FromConfig(root string, cfg *config.Config, progress ProgressReporter) (*Searcher, error) {
	return NewSearcher(Options{
		Root:      root,
		Include:   cfg.Paths.Include,
		Ignore:    cfg.Paths.Ignore,
		Engine:    cfg.Search.Engine,
		Workers:   cfg.Search.Workers,
		CacheSize: cfg.Search.CacheSize,
		Progress:  progress,
	})
}

// Discovery returns the file walker used by the searcher.
func (s *Searcher) Discovery() *Discovery {
	return s.discovery
}

// SetProgress replaces the progress reporter.
func (s *Searcher) SetProgress(progress ProgressReporter) {
	s.progMu.Lock()
	defer s.progMu.Unlock()
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	s.progress = progress
}

// Invalidate drops the cached tree for path, if any.
func (s *Searcher) Invalidate(path string) {
	s.cache.invalidate(path)
}

// Close releases the parse cache.
func (s *Searcher) Close() {
	s.cache.close()
}

// Parse reads and parses a single file, using the cache when the file has
// not changed since it was last parsed.
func (s *Searcher) Parse(ctx context.Context, path string) (*ParsedFile, error) {
	pf, _, err := s.load(ctx, path, nil)
	return pf, err
}

// load returns the parsed file at path. When filter rejects the source the
// file is neither parsed nor cached and load returns a nil ParsedFile.
func (s *Searcher) load(ctx context.Context, path string, filter func(source string) bool) (*ParsedFile, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	if pf, ok := s.cache.get(path, info); ok {
		if filter != nil && !filter(pf.Source) {
			return nil, true, nil
		}
		return pf, true, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	if filter != nil && !filter(string(source)) {
		return nil, false, nil
	}

	tree, err := s.engine.Parse(ctx, source)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	pf := &ParsedFile{
		Path:    path,
		Source:  string(source),
		Tree:    tree,
		modTime: info.ModTime(),
		size:    info.Size(),
	}
	s.cache.put(pf)
	return pf, false, nil
}

// fileVisitor inspects one parsed file and returns its matches.
type fileVisitor[T any] func(pf *ParsedFile) []T

// scan parses every discovered file accepted by filter in parallel and
// collects what visit returns, in discovery order. Files that cannot be
// read or parsed are logged and skipped.
func scan[T any](ctx context.Context, s *Searcher, filter func(source string) bool, visit fileVisitor[T]) ([]T, error) {
	start := time.Now()

	s.progMu.Lock()
	progress := s.progress
	s.progMu.Unlock()

	progress.OnDiscoveryStart()
	files, err := s.discovery.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.discovery.Root(), err)
	}
	progress.OnDiscoveryComplete(len(files))
	progress.OnFileProcessingStart(len(files))

	stats := &SearchStats{FilesDiscovered: len(files)}
	results := make([][]T, len(files))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			pf, hit, err := s.load(ctx, path, filter)
			skipped := err != nil
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Printf("Warning: skipping %s: %v", path, err)
			} else if pf != nil {
				results[i] = visit(pf)
			}

			mu.Lock()
			if skipped {
				stats.FilesSkipped++
			} else {
				stats.FilesScanned++
			}
			if hit {
				stats.CacheHits++
			}
			progress.OnFileProcessed(path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []T
	for _, r := range results {
		out = append(out, r...)
	}
	stats.Matches = len(out)
	stats.Duration = time.Since(start)
	progress.OnComplete(stats)
	return out, nil
}

// SmartSearch returns every class whose name contains keyword. Only
// module-level classes are considered unless opts.Nested is set. Results are
// ordered by path, then by position in the file. No match is not an error.
func (s *Searcher) SmartSearch(ctx context.Context, keyword string, opts SearchOptions) ([]ClassMatch, error) {
	contains := func(source string) bool { return strings.Contains(source, keyword) }

	matches, err := scan(ctx, s, contains, func(pf *ParsedFile) []ClassMatch {
		return MatchClasses(pf.Tree, keyword, pf.Path, opts.Nested)
	})
	if err != nil {
		return nil, err
	}
	sortMatches(matches)
	return matches, nil
}

// MatchClasses returns the Class nodes of tree whose name contains keyword.
// Without nested only the immediate children of Root are inspected.
func MatchClasses(tree *chapter.Tree, keyword, path string, nested bool) []ClassMatch {
	var matches []ClassMatch
	add := func(n chapter.Node) {
		if n.Kind() != chapter.KindClass || !strings.Contains(n.Name(), keyword) {
			return
		}
		span, _ := n.Location()
		matches = append(matches, ClassMatch{
			Name:   n.Name(),
			Path:   path,
			Span:   span,
			Public: n.IsPublic(),
		})
	}

	if !nested {
		for _, child := range tree.Root().Children() {
			add(child)
		}
		return matches
	}

	tree.Walk(func(n chapter.Node) bool {
		add(n)
		return true
	})
	return matches
}

// Grep returns every line that starts with "class " and contains keyword,
// without building context trees.
func (s *Searcher) Grep(ctx context.Context, keyword string) ([]ClassMatch, error) {
	contains := func(source string) bool { return strings.Contains(source, keyword) }

	matches, err := scan(ctx, s, contains, func(pf *ParsedFile) []ClassMatch {
		return GrepClass(strings.Split(pf.Source, "\n"), keyword, pf.Path)
	})
	if err != nil {
		return nil, err
	}
	sortMatches(matches)
	return matches, nil
}

// GrepClass matches raw lines: a line qualifies when, trimmed, it starts with
// "class " and contains keyword anywhere. Name holds the trimmed line.
func GrepClass(lines []string, keyword, path string) []ClassMatch {
	var matches []ClassMatch
	offset := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "class ") && strings.Contains(line, keyword) {
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "class "))
			matches = append(matches, ClassMatch{
				Name:   strings.ReplaceAll(trimmed, "\r", ""),
				Path:   path,
				Span:   chapter.Span{Start: offset, End: offset + len(line)},
				Public: chapter.IsPublicName(name),
			})
		}
		offset += len(line) + 1
	}
	return matches
}

// FindClass returns the first class named exactly name, at any depth, in
// discovery order. It returns ErrClassNotFound when no file defines it.
func (s *Searcher) FindClass(ctx context.Context, name string) (*extractors.PythonClass, error) {
	mentions := func(source string) bool { return strings.Contains(source, "class "+name) }

	found, err := scan(ctx, s, mentions, func(pf *ParsedFile) []extractors.PythonClass {
		nodes := pf.Tree.Find(chapter.KindClass, name)
		if len(nodes) == 0 {
			return nil
		}
		return []extractors.PythonClass{extractors.ExtractClass(pf.Source, nodes[0], pf.Path)}
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return &found[0], nil
}

// Classes extracts every class in the project, at any depth, in discovery
// order.
func (s *Searcher) Classes(ctx context.Context) ([]extractors.PythonClass, error) {
	classes, err := scan(ctx, s, nil, func(pf *ParsedFile) []extractors.PythonClass {
		var out []extractors.PythonClass
		pf.Tree.Walk(func(n chapter.Node) bool {
			if n.Kind() == chapter.KindClass {
				out = append(out, extractors.ExtractClass(pf.Source, n, pf.Path))
			}
			return true
		})
		return out
	})
	return classes, err
}

func sortMatches(matches []ClassMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Path != matches[j].Path {
			return matches[i].Path < matches[j].Path
		}
		return matches[i].Span.Start < matches[j].Span.Start
	})
}
