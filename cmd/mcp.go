package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/mvidal/spur/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI
assistants. The server exposes activity suggestions, bucket contents
and pick history over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server on stdio, Ctrl+C to stop")

		ctx := context.Background()

		server := mcp.NewServer(activitySvc)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
