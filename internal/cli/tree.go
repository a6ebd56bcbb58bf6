package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mvp-joe/jones/internal/display"
	"github.com/mvp-joe/jones/internal/navigation"
	"github.com/spf13/cobra"
)

var (
	treeDirFlag    string
	treeEngineFlag string
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the context tree of one Python file",
	Long: `Tree parses a single file and prints every class, method, docstring and
__all__ list it contains, indented by nesting, with the character span each
one covers.

Examples:
  jones tree models.py
  jones tree models.py --engine treesitter`,
	Args: cobra.ExactArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringVarP(&treeDirFlag, "dir", "d", ".", "Project directory holding .jones/config.yml")
	treeCmd.Flags().StringVar(&treeEngineFlag, "engine", "", "Parser engine: scanner or treesitter (default from config)")
}

func runTree(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadProject(treeDirFlag)
	if err != nil {
		return err
	}

	engine := cfg.Search.Engine
	if treeEngineFlag != "" {
		engine = strings.ToLower(treeEngineFlag)
	}

	return executeTree(context.Background(), display.NewPrinter(cmd.OutOrStdout(), cfg.Display.Color), args[0], engine)
}

func executeTree(ctx context.Context, printer *display.Printer, path, engineName string) error {
	engine, err := navigation.NewEngine(engineName)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	tree, err := engine.Parse(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	printer.Tree(tree)
	return nil
}
