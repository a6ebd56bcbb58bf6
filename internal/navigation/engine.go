package navigation

import (
	"context"
	"fmt"

	"github.com/mvp-joe/jones/internal/chapter"
	"github.com/mvp-joe/jones/internal/config"
	"github.com/mvp-joe/jones/internal/parsers"
)

// Engine turns Python source into a context tree.
type Engine interface {
	Parse(ctx context.Context, source []byte) (*chapter.Tree, error)
}

// scannerEngine is the indentation scanner from internal/chapter.
type scannerEngine struct{}

func (scannerEngine) Parse(ctx context.Context, source []byte) (*chapter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return chapter.ParseSource(string(source)), nil
}

// NewEngine returns the engine registered under name.
func NewEngine(name string) (Engine, error) {
	switch name {
	case "", config.EngineScanner:
		return scannerEngine{}, nil
	case config.EngineTreeSitter:
		return parsers.NewPythonParser(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q", name)
	}
}
