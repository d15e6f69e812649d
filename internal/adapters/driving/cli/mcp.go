package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Assistants
can list and edit rule categories, build rule text, list versions and
backlinks, and export rules into the vault.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  rulebook mcp serve

  # HTTP mode
  rulebook mcp serve --port 8080`,
	Annotations: background,
	RunE:        runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if taxonomyService == nil {
		return errNotConfigured("taxonomy")
	}

	ports := &mcp.Ports{
		Taxonomy:  taxonomyService,
		Inserter:  inserterService,
		Versions:  versionService,
		Settings:  settingsService,
		Export:    exportService,
		Backlinks: backlinkService,
		Documents: documentStore,
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
