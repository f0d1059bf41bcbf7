package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/LiamCoop/timetracker/internal/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP over stdio",
	Long:  "Serve the MCP tools over stdin/stdout as the configured default user. Logs go to stderr.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// stdout carries JSON-RPC.
		a, err := newApp(ctx, os.Stderr)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.users.Ensure(ctx, a.cfg.Auth.DefaultUser, "", nil); err != nil {
			return err
		}

		a.logger.Info("starting stdio transport", "user_id", a.cfg.Auth.DefaultUser)
		server := mcp.NewServer(a.mcpConfig("stdio"))
		if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}
