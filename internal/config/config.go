// Package config loads jones settings from .jones/config.yml under the
// project root, with JONES_* environment variable overrides.
package config

// Config represents the complete jones configuration.
// It can be loaded from .jones/config.yml with environment variable overrides.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
}

// PathsConfig defines which files to scan and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for Python sources
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// SearchConfig controls how source files are parsed and searched.
type SearchConfig struct {
	Engine    string `yaml:"engine" mapstructure:"engine"`         // "scanner" or "treesitter"
	Workers   int    `yaml:"workers" mapstructure:"workers"`       // files parsed concurrently
	Nested    bool   `yaml:"nested" mapstructure:"nested"`         // match classes below module level
	CacheSize int    `yaml:"cache_size" mapstructure:"cache_size"` // parsed trees kept in memory, 0 disables
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Color bool `yaml:"color" mapstructure:"color"`
}

const (
	// EngineScanner selects the indentation scanner in internal/chapter.
	EngineScanner = "scanner"

	// EngineTreeSitter selects the tree-sitter-python grammar.
	EngineTreeSitter = "treesitter"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
			},
			Ignore: []string{
				".git/**",
				"**/__pycache__/**",
				"**/.venv/**",
				"**/venv/**",
				"**/site-packages/**",
				"**/node_modules/**",
				"build/**",
				"dist/**",
			},
		},
		Search: SearchConfig{
			Engine:    EngineScanner,
			Workers:   8,
			Nested:    false,
			CacheSize: 1024,
		},
		Display: DisplayConfig{
			Color: true,
		},
	}
}
