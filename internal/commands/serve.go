package commands

import (
	"log"
	"os"

	mcpserver "subcost/internal/mcp"
	"subcost/internal/ui"
)

// RunServe starts the MCP stdio server. Log output moves to stderr so the
// JSON-RPC stream on stdout stays clean.
func RunServe() {
	log.SetOutput(os.Stderr)
	if err := mcpserver.RunServer(Version); err != nil {
		ui.ShowError("MCP server stopped", err)
		os.Exit(1)
	}
}
