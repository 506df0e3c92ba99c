package main

import (
	"fmt"

	"github.com/HendryAvila/wardrobe/internal/server"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Starts an MCP server on stdin/stdout exposing the wardrobe tools,
the catalog summary resource and the outfit prompts.

Logs go to stderr; stdout is reserved for the protocol.`,
		Example: `  # Register with an MCP host
  wardrobe serve

  # Keep the catalog in SQLite instead of a JSON file
  wardrobe serve --backend sqlite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := server.New(a.cfg, a.log)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			return mcpserver.ServeStdio(s)
		},
	}
}
