package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/axquery/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing axquery tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the query commands
as tools: tree, find, line, column, get, set, action and wait. AI agents can
call tools directly without shell overhead.

Application roots are cached between calls and revalidated on every use, so
a restarted application is picked up on the next call.

Supported transports:
  stdio   Standard I/O (default, for MCP clients)
  http    Streamable HTTP transport (for remote agents)`,
	Example: `  axquery serve
  axquery serve --transport http --port 8080
  axquery serve --tree editor.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, http (default from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for the http transport (default from config, 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := server.Config{Transport: cfg.Serve.Transport, Port: cfg.Serve.Port}
	if cmd.Flags().Changed("transport") {
		sc.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		sc.Port, _ = cmd.Flags().GetInt("port")
	}

	s, err := currentSession()
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	return server.New(s, logger).Serve(sc)
}
