package cli

import (
	"context"
	"fmt"

	"github.com/mvp-joe/jones/internal/display"
	"github.com/mvp-joe/jones/internal/hierarchy"
	"github.com/mvp-joe/jones/internal/navigation"
	"github.com/spf13/cobra"
)

var (
	hierarchyDirFlag       string
	hierarchyAncestorsFlag bool
)

// hierarchyCmd represents the hierarchy command
var hierarchyCmd = &cobra.Command{
	Use:   "hierarchy BASE",
	Short: "List every class that inherits from BASE",
	Long: `Hierarchy extracts every class of the project, links each one to the base
classes it declares and prints the subclasses of BASE, nearest first and
indented by distance. Bases defined outside the project are not followed.

Examples:
  # Everything derived from Animal
  jones hierarchy Animal

  # The project classes Parrot inherits from
  jones hierarchy Parrot --ancestors`,
	Args: cobra.ExactArgs(1),
	RunE: runHierarchy,
}

func init() {
	rootCmd.AddCommand(hierarchyCmd)
	hierarchyCmd.Flags().StringVarP(&hierarchyDirFlag, "dir", "d", ".", "Project directory to search")
	hierarchyCmd.Flags().BoolVar(&hierarchyAncestorsFlag, "ancestors", false, "List base classes instead of subclasses")
}

func runHierarchy(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadProject(hierarchyDirFlag)
	if err != nil {
		return err
	}

	searcher, err := navigation.FromConfig(root, cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Close()

	printer := display.NewPrinter(cmd.OutOrStdout(), cfg.Display.Color)
	return executeHierarchy(context.Background(), searcher, printer, args[0], hierarchyAncestorsFlag)
}

func executeHierarchy(ctx context.Context, searcher *navigation.Searcher, printer *display.Printer, name string, ancestors bool) error {
	classes, err := searcher.Classes(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect classes: %w", err)
	}

	h, err := hierarchy.Build(classes)
	if err != nil {
		return fmt.Errorf("failed to build class hierarchy: %w", err)
	}

	class, ok := h.Class(name)
	if !ok {
		printer.NotFound()
		return nil
	}

	if ancestors {
		printer.Hierarchy(class, h.Ancestors(name))
		return nil
	}
	printer.Hierarchy(class, h.Subclasses(name))
	return nil
}
