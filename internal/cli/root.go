package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/jones/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jones",
	Short: "Jones - find Python classes by structure, not by text",
	Long: `Jones searches Python projects for classes. Each file is scanned into a
tree of classes, methods, docstrings and __all__ lists, so a keyword only
matches real class definitions and never comments, strings or variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <dir>/.jones/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// initConfig lets JONES_VERBOSE, JONES_NO_COLOR and JONES_CONFIG stand in
// for the global flags.
func initConfig() {
	viper.SetEnvPrefix("JONES")
	viper.BindEnv("verbose")
	viper.BindEnv("config")
	viper.BindEnv("no-color", "JONES_NO_COLOR")

	if file := viper.GetString("config"); file != "" && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", file)
	}
}

// loadProject resolves dir to an absolute project root and loads its
// configuration. --config replaces the .jones/ lookup and --no-color wins
// over display.color.
func loadProject(dir string) (string, *config.Config, error) {
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var loader config.Loader
	if file := viper.GetString("config"); file != "" {
		loader = config.NewFileLoader(root, file)
	} else {
		loader = config.NewLoader(root)
	}

	cfg, err := loader.Load()
	if err != nil {
		return "", nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if viper.GetBool("no-color") {
		cfg.Display.Color = false
	}
	return root, cfg, nil
}
