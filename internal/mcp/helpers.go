package mcp

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mvp-joe/jones/internal/navigation"
)

// parseToolArguments validates and extracts the arguments map from an MCP tool request.
// Returns the arguments map or an error result if validation fails.
func parseToolArguments(request mcp.CallToolRequest) (arguments, *mcp.CallToolResult) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}
	return arguments(argsMap), nil
}

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// filterByPrefix keeps matches whose slash-separated path, relative to root,
// starts with one of prefixes. An empty prefix list keeps everything.
func filterByPrefix(matches []navigation.ClassMatch, root string, prefixes []string) []navigation.ClassMatch {
	if len(prefixes) == 0 {
		return matches
	}

	var kept []navigation.ClassMatch
	for _, m := range matches {
		rel, err := filepath.Rel(root, m.Path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		for _, prefix := range prefixes {
			if strings.HasPrefix(rel, strings.TrimPrefix(prefix, "./")) {
				kept = append(kept, m)
				break
			}
		}
	}
	return kept
}
