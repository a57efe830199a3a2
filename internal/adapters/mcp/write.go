package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"docdrift/internal/app"
	"docdrift/internal/application/commands"
)

// RegisterWriteTools adds the tools that produce migrations to the MCP server.
func RegisterWriteTools(s *server.MCPServer, a *app.App) {
	s.AddTool(makeMigrationTool(), makeMigrationHandler(a))
}

// --- make_migration ---

func makeMigrationTool() mcp.Tool {
	return mcp.NewTool("make_migration",
		mcp.WithDescription("Generate a migration that moves the compared connection toward the reference. Returns the migration text; writes it to output_path when given. Databases are never modified."),
		mcp.WithString("reference",
			mcp.Description("Reference connection name"),
			mcp.Required(),
		),
		mcp.WithString("compared",
			mcp.Description("Compared connection name"),
			mcp.Required(),
		),
		mcp.WithString("renderer",
			mcp.Description("Renderer. Defaults to the configured one"),
			mcp.Enum("template", "php"),
		),
		mcp.WithString("template",
			mcp.Description("Template file or builtin:arangosh, builtin:mongosh. Defaults to the configured one"),
		),
		mcp.WithString("output_path",
			mcp.Description("File to write the migration to. Omit to only return it"),
		),
	)
}

func makeMigrationHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reference, compared, err := pairArgs(req)
		if err != nil {
			return toolError(err)
		}
		renderer, err := a.Renderer(req.GetString("renderer", ""), req.GetString("template", ""))
		if err != nil {
			return toolError(err)
		}

		pair, err := a.OpenPair(ctx, reference, compared)
		if err != nil {
			return toolError(err)
		}
		defer pair.Close(ctx)

		compare := a.NewCompare(pair, nil, false)

		if output := req.GetString("output_path", ""); output != "" {
			result, err := commands.NewMakeMigrationCommand(compare, renderer, output).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(result.Message + "\n\n" + string(result.Content)), nil
		}

		cmp, err := compare.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if cmp.Equal() {
			return mcp.NewToolResultText("Collections are equal"), nil
		}
		plan, content, err := commands.RenderMigration(renderer, cmp)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Migration with %d actions\n\n%s", plan.Len(), content)), nil
	}
}
