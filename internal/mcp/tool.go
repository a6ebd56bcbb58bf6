package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/jones/internal/display"
	"github.com/mvp-joe/jones/internal/hierarchy"
	mcputils "github.com/mvp-joe/jones/internal/mcp-utils"
	"github.com/mvp-joe/jones/internal/navigation"
)

// AddJonesSearchTool registers the jones_search tool with an MCP server.
func AddJonesSearchTool(s *server.MCPServer, searcher ClassSearcher, root string) {
	tool := mcp.NewTool(
		"jones_search",
		mcp.WithDescription("Find Python classes whose name contains a keyword. Returns each match with its file and byte span. Module-level classes only unless nested is set."),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Substring of the class name to look for (e.g., 'Animal')")),
		mcp.WithBoolean("nested",
			mcp.Description("Also match classes defined inside other classes or functions (default: false)")),
		mcp.WithBoolean("grep",
			mcp.Description("Match raw 'class ' lines containing the keyword anywhere, including base class lists (default: false)")),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of matches to return (1-%d, default: %d)", MaxLimit, DefaultLimit))),
		mcp.WithArray("paths",
			mcp.Description("Only return matches under these project-relative path prefixes, e.g. ['app/models', 'lib']")),
	)

	s.AddTool(tool, createJonesSearchHandler(searcher, root))
}

// searchRequest holds the coerced arguments of jones_search.
type searchRequest struct {
	Keyword string   `json:"keyword"`
	Nested  bool     `json:"nested"`
	Grep    bool     `json:"grep"`
	Limit   int      `json:"limit"`
	Paths   []string `json:"paths"`
}

func createJonesSearchHandler(searcher ClassSearcher, root string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		keyword, err := args.String("keyword", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var req searchRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		limit := clamp(req.Limit, DefaultLimit, 1, MaxLimit)

		var matches []navigation.ClassMatch
		mode := "smart"
		if req.Grep {
			mode = "grep"
			matches, err = searcher.Grep(ctx, keyword)
		} else {
			matches, err = searcher.SmartSearch(ctx, keyword, navigation.SearchOptions{Nested: req.Nested})
		}
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		matches = filterByPrefix(matches, root, req.Paths)
		total := len(matches)
		if total > limit {
			matches = matches[:limit]
		}
		if matches == nil {
			matches = []navigation.ClassMatch{}
		}

		return marshalToolResponse(&SearchResponse{
			Keyword:   keyword,
			Mode:      mode,
			Matches:   matches,
			Total:     total,
			Truncated: total > len(matches),
		})
	}
}

// AddJonesShowTool registers the jones_show tool with an MCP server.
func AddJonesShowTool(s *server.MCPServer, searcher ClassSearcher) {
	tool := mcp.NewTool(
		"jones_show",
		mcp.WithDescription("Show a Python class by exact name: its file, docstring, base classes and method signatures with parameter and return types."),
		mcp.WithString("class_name",
			mcp.Required(),
			mcp.Description("Exact class name (e.g., 'Human')")),
	)

	s.AddTool(tool, createJonesShowHandler(searcher))
}

func createJonesShowHandler(searcher ClassSearcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		name, err := args.String("class_name", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		class, err := searcher.FindClass(ctx, name)
		if errors.Is(err, navigation.ErrClassNotFound) {
			return marshalToolResponse(&ShowResponse{Found: false, Message: display.NotFoundMessage})
		}
		if err != nil {
			return nil, fmt.Errorf("lookup failed: %w", err)
		}

		return marshalToolResponse(&ShowResponse{Found: true, Class: class})
	}
}

// AddJonesSubclassesTool registers the jones_subclasses tool with an MCP server.
func AddJonesSubclassesTool(s *server.MCPServer, searcher ClassSearcher) {
	tool := mcp.NewTool(
		"jones_subclasses",
		mcp.WithDescription("List every project class deriving from a base class, directly or indirectly, nearest first."),
		mcp.WithString("base",
			mcp.Required(),
			mcp.Description("Exact name of the base class (e.g., 'Animal')")),
	)

	s.AddTool(tool, createJonesSubclassesHandler(searcher))
}

func createJonesSubclassesHandler(searcher ClassSearcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := parseToolArguments(request)
		if errResult != nil {
			return errResult, nil
		}

		base, err := args.String("base", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		classes, err := searcher.Classes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list classes: %w", err)
		}
		h, err := hierarchy.Build(classes)
		if err != nil {
			return nil, fmt.Errorf("failed to build hierarchy: %w", err)
		}

		response := &SubclassesResponse{Base: base, Subclasses: []SubclassResult{}}
		if _, ok := h.Class(base); ok {
			response.Found = true
			for _, rel := range h.Subclasses(base) {
				response.Subclasses = append(response.Subclasses, SubclassResult{
					Name:  rel.Class.Name,
					Path:  rel.Class.Path,
					Depth: rel.Depth,
					Bases: h.Bases(rel.Class.Name),
				})
			}
		}
		response.Total = len(response.Subclasses)

		return marshalToolResponse(response)
	}
}
