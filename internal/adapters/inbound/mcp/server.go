package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewCovscoreMCPServer creates a new MCP server with all covscore tools and
// resources registered. Relative report paths are resolved against root.
func NewCovscoreMCPServer(root string) *server.MCPServer {
	s := server.NewMCPServer(
		"covscore",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, root)
	registerResources(s)

	return s
}
