package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvp-joe/jones/internal/display"
	"github.com/mvp-joe/jones/internal/navigation"
	"github.com/spf13/cobra"
)

var showDirFlag string

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show CLASS",
	Short: "Print the docstring, bases and methods of a class",
	Long: `Show looks up the first class named exactly CLASS, at any depth, and prints
its docstring, its base classes and the signature of every method.

Example:
  jones show Human --dir ~/src/people`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showDirFlag, "dir", "d", ".", "Project directory to search")
}

func runShow(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject(showDirFlag)
	if err != nil {
		return err
	}

	searcher, err := navigation.FromConfig(root, cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Close()

	return executeShow(context.Background(), searcher, display.NewPrinter(cmd.OutOrStdout(), cfg.Display.Color), args[0])
}

func executeShow(ctx context.Context, searcher *navigation.Searcher, printer *display.Printer, name string) error {
	class, err := searcher.FindClass(ctx, name)
	if errors.Is(err, navigation.ErrClassNotFound) {
		printer.NotFound()
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}

	printer.Class(class)
	return nil
}
