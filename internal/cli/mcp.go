package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/jones/internal/mcp"
	"github.com/spf13/cobra"
)

var (
	mcpDirFlag   string
	mcpWatchFlag bool
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for Python class search",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
search the classes of your project.

The MCP server:
- Provides jones_search, jones_show and jones_subclasses tools
- Keeps parsed files in memory and re-parses them when they change (--watch)
- Communicates via stdio (standard MCP transport)

Example:
  jones mcp --dir ~/src/zoo`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVarP(&mcpDirFlag, "dir", "d", ".", "Project directory to serve")
	mcpCmd.Flags().BoolVarP(&mcpWatchFlag, "watch", "w", true, "Re-parse files as they change")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	projectPath, cfg, err := loadProject(mcpDirFlag)
	if err != nil {
		return err
	}

	// stdout carries the protocol, so startup information goes to stderr
	fmt.Fprintf(os.Stderr, "Jones MCP Server %s\n", Version)
	fmt.Fprintf(os.Stderr, "Project: %s\n", projectPath)
	fmt.Fprintf(os.Stderr, "Engine:  %s\n", cfg.Search.Engine)
	fmt.Fprintf(os.Stderr, "\n")

	mcpConfig := &mcp.MCPServerConfig{
		ProjectPath: projectPath,
		Config:      cfg,
		Version:     Version,
		Watch:       mcpWatchFlag,
	}

	server, err := mcp.NewMCPServer(ctx, mcpConfig)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
