package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/adapters/httpapi"
	"github.com/example/tpflow/internal/adapters/mcpapi"
	"github.com/example/tpflow/internal/db"
	"github.com/example/tpflow/internal/logging"
	"github.com/example/tpflow/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tpflow API server",
	Long: `Run the HTTP server exposing the REST API under /api/v1 and the
MCP endpoint under /mcp. The server stops gracefully on SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(os.Stderr, cfg.Log.Level)

		// The bootstrap token authenticates into the default tenant
		// until real users exist.
		tenantID, err := db.EnsureTenant(wire.Database(), cfg.Tenant.Name)
		if err != nil {
			return fmt.Errorf("failed to resolve tenant: %w", err)
		}
		if cfg.Auth.BootstrapToken != "" {
			logger.Warn("bootstrap token is enabled; clear auth.bootstrap_token once users exist")
		}

		mcpHandler, err := mcpapi.NewHandler(mcpapi.Config{
			ServerName:   "tpflow",
			EndpointPath: "/mcp",
		}, wire.ProjectService(), wire.WorkflowService(), wire.DashboardService())
		if err != nil {
			return fmt.Errorf("failed to build mcp handler: %w", err)
		}

		srv := httpapi.New(httpapi.Services{
			Clients:   wire.ClientService(),
			Users:     wire.UserService(),
			Projects:  wire.ProjectService(),
			Workflow:  wire.WorkflowService(),
			Tasks:     wire.TaskService(),
			Entries:   wire.TimeEntryService(),
			Reviews:   wire.ReviewService(),
			Documents: wire.DocumentService(),
			Dashboard: wire.DashboardService(),
		}, logger, httpapi.Bootstrap{
			Token:    cfg.Auth.BootstrapToken,
			TenantID: tenantID,
		}, mcpHandler)

		server := &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      srv.Handler(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server starting", "addr", cfg.HTTP.Addr)
			serverErrors <- server.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			logger.Info("shutdown signal received", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown failed, forcing close", "error", err)
				if err := server.Close(); err != nil {
					return fmt.Errorf("failed to close server: %w", err)
				}
			}
			logger.Info("server stopped")
		}
		return nil
	},
}

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	return serveCmd
}
