package server

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/radutopala/knowledge-mcp/internal/tools"
)

// MCPServer exposes the identical tool catalog over the official MCP
// transports, for clients that speak MCP natively instead of the JSON-RPC
// HTTP surface.
func MCPServer(registry *tools.Registry, name, version string) *mcp.Server {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    name,
			Version: version,
		},
		nil,
	)

	for _, tool := range registry.List() {
		tool := tool
		mcp.AddTool(srv, &mcp.Tool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
			result := registry.Execute(ctx, tool.Name, args)
			data, err := json.Marshal(result)
			if err != nil {
				return nil, nil, err
			}
			success, _ := result["success"].(bool)
			return &mcp.CallToolResult{
				IsError: !success,
				Content: []mcp.Content{
					&mcp.TextContent{Text: string(data)},
				},
			}, nil, nil
		})
	}

	return srv
}

// RunStdio serves the MCP server over stdio until ctx is cancelled.
func RunStdio(ctx context.Context, srv *mcp.Server) error {
	return srv.Run(ctx, &mcp.StdioTransport{})
}
