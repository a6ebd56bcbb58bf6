// Package mcp serves class search over the Model Context Protocol on stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/jones/internal/navigation"
	"github.com/mvp-joe/jones/internal/watcher"
)

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config   *MCPServerConfig
	searcher *navigation.Searcher
	watcher  watcher.FileWatcher
	mcp      *server.MCPServer
}

// NewMCPServer creates a new MCP server searching config.ProjectPath.
func NewMCPServer(ctx context.Context, config *MCPServerConfig) (*MCPServer, error) {
	if config == nil {
		config = DefaultMCPServerConfig()
	}
	if config.Config == nil {
		return nil, fmt.Errorf("search configuration is required")
	}

	searcher, err := navigation.FromConfig(config.ProjectPath, config.Config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create searcher: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"jones-mcp",
		config.Version,
		server.WithToolCapabilities(true),
	)

	AddJonesSearchTool(mcpServer, searcher, config.ProjectPath)
	AddJonesShowTool(mcpServer, searcher)
	AddJonesSubclassesTool(mcpServer, searcher)

	s := &MCPServer{
		config:   config,
		searcher: searcher,
		mcp:      mcpServer,
	}

	if config.Watch {
		fw, err := watcher.NewFileWatcher(config.ProjectPath, watcher.ForDiscovery(searcher.Discovery(), 0))
		if err != nil {
			searcher.Close()
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		s.watcher = fw
	}

	return s, nil
}

// Serve starts the MCP server and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.watcher != nil {
		coordinator := watcher.NewWatchCoordinator(s.watcher, s.searcher, s.refresh)
		go func() {
			if err := coordinator.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Warning: file watching stopped: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio for %s...", s.config.ProjectPath)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refresh re-parses changed files that still exist so the next tool call
// finds them cached.
func (s *MCPServer) refresh(ctx context.Context, changed []string) error {
	parsed := 0
	for _, path := range changed {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := s.searcher.Parse(ctx, path); err != nil {
			log.Printf("Warning: failed to parse %s: %v", path, err)
			continue
		}
		parsed++
	}
	log.Printf("Refreshed %d of %d changed file(s)", parsed, len(changed))
	return nil
}

// Close releases all resources.
func (s *MCPServer) Close() error {
	var err error
	if s.watcher != nil {
		err = s.watcher.Stop()
	}
	if s.searcher != nil {
		s.searcher.Close()
	}
	return err
}
