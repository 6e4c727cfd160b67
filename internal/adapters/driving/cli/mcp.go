package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/graphscope/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the fetch_profile tool and the graphscope://config
resource. It communicates over stdio by default; use --http to serve the
streamable HTTP transport instead.

The tool uses ` + tokenEnv + ` when a call carries no token.

Examples:
  # Stdio mode (for desktop assistants)
  graphscope mcp

  # HTTP mode (for MCP Inspector)
  graphscope mcp --http 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	services, err := buildServices(Options{})
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Fetch:        services.Fetch,
		Config:       services.Config,
		DefaultToken: os.Getenv(tokenEnv),
	})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
