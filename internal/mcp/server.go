package mcpserver

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RunServer starts the MCP server over stdio transport.
func RunServer(version string) error {
	server := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "subcost",
			Version: version,
		},
		nil,
	)

	registerReportTools(server)

	return server.Run(context.Background(), &mcpsdk.StdioTransport{})
}
