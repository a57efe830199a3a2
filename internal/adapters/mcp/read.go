package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docdrift/internal/adapters/report"
	"docdrift/internal/app"
	"docdrift/internal/application/commands"
	"docdrift/internal/domain"
)

// RegisterReadTools adds the tools that only read databases to the MCP server.
func RegisterReadTools(s *server.MCPServer, a *app.App) {
	s.AddTool(listConnectionsTool(), listConnectionsHandler(a))
	s.AddTool(testConnectionTool(), testConnectionHandler(a))
	s.AddTool(compareTool(), compareHandler(a))
}

// --- list_connections ---

func listConnectionsTool() mcp.Tool {
	return mcp.NewTool("list_connections",
		mcp.WithDescription("List the registered database connections. Passwords are never returned."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listConnectionsHandler(a *app.App) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		conns, err := commands.ListConnections(a.Registry)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(conns, formatConnection)
	}
}

// --- test_connection ---

func testConnectionTool() mcp.Tool {
	return mcp.NewTool("test_connection",
		mcp.WithDescription("Check that a registered connection reaches its database and report the server version."),
		mcp.WithString("name",
			mcp.Description("Connection name"),
			mcp.Required(),
		),
	)
}

func testConnectionHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}
		msg, err := commands.TestConnection(ctx, a.Registry, a.Connector, name)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(msg), nil
	}
}

// --- compare ---

func compareTool() mcp.Tool {
	return mcp.NewTool("compare",
		mcp.WithDescription("Compare the user collections of two connections. Returns the collections to create and delete, the collections whose content differs, and the document records that move the compared database toward the reference."),
		mcp.WithString("reference",
			mcp.Description("Reference connection name"),
			mcp.Required(),
		),
		mcp.WithString("compared",
			mcp.Description("Compared connection name"),
			mcp.Required(),
		),
		mcp.WithBoolean("checksum_only",
			mcp.Description("Stop after comparing collection checksums"),
		),
		mcp.WithString("format",
			mcp.Description("Output format. Default: json"),
			mcp.Enum("json", "yaml", "text"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func compareHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reference, compared, err := pairArgs(req)
		if err != nil {
			return toolError(err)
		}
		format, err := report.ParseFormat(req.GetString("format", string(report.FormatJSON)))
		if err != nil {
			return toolError(err)
		}
		checksumOnly := mcp.ParseBoolean(req, "checksum_only", false)

		pair, err := a.OpenPair(ctx, reference, compared)
		if err != nil {
			return toolError(err)
		}
		defer pair.Close(ctx)

		compare := a.NewCompare(pair, nil, false)
		compare.ChecksumOnly = checksumOnly
		result, err := compare.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var buf bytes.Buffer
		printer := report.NewPrinter(&buf, report.Options{Format: format, ChecksumOnly: checksumOnly})
		if err := printer.Print(result); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- helpers ---

func pairArgs(req mcp.CallToolRequest) (string, string, error) {
	reference := req.GetString("reference", "")
	compared := req.GetString("compared", "")
	if reference == "" || compared == "" {
		return "", "", fmt.Errorf("reference and compared are required")
	}
	return reference, compared, nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatConnection(c domain.Connection) string {
	s := fmt.Sprintf("%s  %s  %s", c.Name, c.URL, c.Database)
	if c.Username != "" {
		s += "  user=" + c.Username
	}
	return s
}
