package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LiamCoop/timetracker/internal/mcp"
	"github.com/LiamCoop/timetracker/internal/transport"
	"github.com/LiamCoop/timetracker/internal/webhook"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, os.Stdout)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ensureDefaultUser(ctx); err != nil {
			return err
		}
		return runHTTP(ctx, a)
	},
}

func runHTTP(ctx context.Context, a *app) error {
	cfg := a.cfg

	opts := transport.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         a.logger,
	}
	if cfg.Auth.Enabled {
		opts.Auth = transport.AuthMiddleware(a.apiKeys, a.logger)
	} else {
		a.logger.Warn("authentication disabled, all requests act as the default user", "user_id", cfg.Auth.DefaultUser)
		opts.Auth = transport.StaticUserMiddleware(cfg.Auth.DefaultUser)
	}

	if cfg.Webhook.Secret != "" {
		verifier, err := webhook.NewVerifier(cfg.Webhook.Secret)
		if err != nil {
			return err
		}
		opts.Webhook = webhook.NewHandler(verifier, a.users, a.clock, a.logger)
	} else {
		a.logger.Info("webhook secret not set, identity webhook disabled")
	}

	if cfg.MCP.Enabled {
		mcpServer := mcp.NewServer(a.mcpConfig("http"))
		opts.MCP = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
		)
	}

	router := transport.NewServer(transport.Services{
		Projects:  a.projects,
		Entries:   a.entries,
		Summaries: a.summaries,
		Quotes:    a.quotes,
		Activity:  a.activity,
	}, opts)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", httpServer.Addr, "db_driver", cfg.DB.Driver, "mcp", cfg.MCP.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
