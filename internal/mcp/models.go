package mcp

import (
	"github.com/mvp-joe/jones/internal/config"
	"github.com/mvp-joe/jones/internal/extractors"
	"github.com/mvp-joe/jones/internal/navigation"
)

const (
	// DefaultLimit caps the matches returned by jones_search when no limit is given.
	DefaultLimit = 100

	// MaxLimit is the largest limit jones_search accepts.
	MaxLimit = 1000
)

// MCPServerConfig contains configuration for the MCP server.
type MCPServerConfig struct {
	ProjectPath string         // Project root to search
	Config      *config.Config // Search configuration
	Version     string         // Reported to clients
	Watch       bool           // Refresh parsed files when sources change
}

// DefaultMCPServerConfig returns default MCP server configuration.
func DefaultMCPServerConfig() *MCPServerConfig {
	return &MCPServerConfig{
		ProjectPath: ".",
		Config:      config.Default(),
		Version:     "dev",
		Watch:       true,
	}
}

// SearchResponse is the JSON result of the jones_search tool.
type SearchResponse struct {
	Keyword   string                  `json:"keyword"`
	Mode      string                  `json:"mode"`
	Matches   []navigation.ClassMatch `json:"matches"`
	Total     int                     `json:"total"`
	Truncated bool                    `json:"truncated"`
}

// ShowResponse is the JSON result of the jones_show tool.
type ShowResponse struct {
	Found   bool                    `json:"found"`
	Class   *extractors.PythonClass `json:"class,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// SubclassResult is one entry of a jones_subclasses response.
type SubclassResult struct {
	Name  string   `json:"name"`
	Path  string   `json:"path"`
	Depth int      `json:"depth"`
	Bases []string `json:"bases"`
}

// SubclassesResponse is the JSON result of the jones_subclasses tool.
type SubclassesResponse struct {
	Base       string           `json:"base"`
	Found      bool             `json:"found"`
	Subclasses []SubclassResult `json:"subclasses"`
	Total      int              `json:"total"`
}
