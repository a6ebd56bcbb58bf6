package mcp

import (
	"context"

	"github.com/mvp-joe/jones/internal/extractors"
	"github.com/mvp-joe/jones/internal/navigation"
)

// ClassSearcher defines the class lookups exposed as MCP tools.
// navigation.Searcher implements it.
type ClassSearcher interface {
	// SmartSearch returns classes whose name contains keyword.
	SmartSearch(ctx context.Context, keyword string, opts navigation.SearchOptions) ([]navigation.ClassMatch, error)

	// Grep returns raw "class " lines containing keyword.
	Grep(ctx context.Context, keyword string) ([]navigation.ClassMatch, error)

	// FindClass returns the first class named exactly name.
	FindClass(ctx context.Context, name string) (*extractors.PythonClass, error)

	// Classes returns every class in the project.
	Classes(ctx context.Context) ([]extractors.PythonClass, error)
}

var _ ClassSearcher = (*navigation.Searcher)(nil)
