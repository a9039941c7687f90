package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/covscore/covscore/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the covscore MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start covscore MCP server (stdio)",
		Long:  "Start the covscore MCP server using stdio transport. This lets AI coding assistants analyze coverage reports and look up the rating scale.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" {
				root = "."
			}
			s := mcpadapter.NewCovscoreMCPServer(root)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&root, "path", "", "Directory relative report paths are resolved against (defaults to current working directory)")

	return cmd
}
