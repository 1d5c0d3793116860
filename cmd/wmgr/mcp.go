package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/wmgr/internal/mainthread"
	"github.com/1broseidon/wmgr/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients,
which can then place windows with the apply_action tool.`,
		Example: `  # Register with an MCP client
  <client> mcp add wmgr -- wmgr mcp serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := mcp.NewServer(app.engine, mainthread.Call, app.logger)
			app.logger.Info().Msg("mcp server listening on stdio")
			err = mainthread.Loop(ctx, server.Run)
			if err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Error().Err(err).Msg("mcp server failed")
				return err
			}
			return nil
		},
	}

	mcpCmd.AddCommand(serveCmd)
	return mcpCmd
}
