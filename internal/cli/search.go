package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/jones/internal/display"
	"github.com/mvp-joe/jones/internal/navigation"
	"github.com/mvp-joe/jones/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	dirFlag    string
	quietFlag  bool
	watchFlag  bool
	grepFlag   bool
	nestedFlag bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search KEYWORD",
	Short: "Find classes whose name contains KEYWORD",
	Long: `Search scans every Python file of the project and lists the classes whose
name contains KEYWORD. Only real class definitions match: a keyword found in
a comment, a string or a method body is ignored.

By default only module-level classes are listed. --nested also lists classes
defined inside other classes or functions. --grep skips the context trees and
matches raw "class ..." lines instead.

Examples:
  # Search the current directory
  jones search Animal

  # Search another project, including nested classes
  jones search Animal --dir ~/src/zoo --nested

  # Keep searching as files change
  jones search Animal --watch
`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Project directory to search")
	searchCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and statistics")
	searchCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and search again")
	searchCmd.Flags().BoolVar(&grepFlag, "grep", false, "Match raw class lines instead of context trees")
	searchCmd.Flags().BoolVar(&nestedFlag, "nested", false, "Also match classes nested in other scopes")
}

// searchParams holds the options of one search run.
type searchParams struct {
	keyword string
	grep    bool
	nested  bool
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nInterrupted! Stopping search...")
			cancel()
		case <-ctx.Done():
		}
	}()

	root, cfg, err := loadProject(dirFlag)
	if err != nil {
		return err
	}

	progress := NewCLIProgressReporter(cmd.ErrOrStderr(), quietFlag)
	searcher, err := navigation.FromConfig(root, cfg, progress)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Close()

	printer := display.NewPrinter(cmd.OutOrStdout(), cfg.Display.Color)
	params := searchParams{
		keyword: args[0],
		grep:    grepFlag,
		nested:  nestedFlag || cfg.Search.Nested,
	}

	if err := executeSearch(ctx, searcher, printer, params); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("search cancelled")
		}
		return err
	}

	if !watchFlag {
		return nil
	}

	if !quietFlag {
		log.Println("Watching for changes...")
	}
	return watchSearch(ctx, searcher, func(ctx context.Context, changed []string) error {
		if !quietFlag {
			log.Printf("%d file(s) changed, searching again", len(changed))
		}
		return executeSearch(ctx, searcher, printer, params)
	})
}

// executeSearch runs one search and prints its matches. No match prints the
// not-found message and is not an error.
func executeSearch(ctx context.Context, searcher *navigation.Searcher, printer *display.Printer, params searchParams) error {
	var (
		matches []navigation.ClassMatch
		err     error
	)
	if params.grep {
		matches, err = searcher.Grep(ctx, params.keyword)
	} else {
		matches, err = searcher.SmartSearch(ctx, params.keyword, navigation.SearchOptions{Nested: params.nested})
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printer.Matches(matches)
	return nil
}

// watchSearch re-runs run whenever a searched file changes. Blocks until ctx
// is cancelled.
func watchSearch(ctx context.Context, searcher *navigation.Searcher, run watcher.RunFunc) error {
	discovery := searcher.Discovery()
	fw, err := watcher.NewFileWatcher(discovery.Root(), watcher.ForDiscovery(discovery, 0))
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	coordinator := watcher.NewWatchCoordinator(fw, searcher, run)
	if err := coordinator.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch mode failed: %w", err)
	}
	return nil
}
