// Package cli implements the tpflow cobra commands. Commands parse
// flags, resolve configuration and delegate to the application
// services through the wire container and the CLI adapters.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/config"
	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/db"
	"github.com/example/tpflow/internal/wire"
)

// loadConfig loads configuration honoring the root --config flag and
// primes the wire container with it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	wire.Configure(cfg)
	return cfg, nil
}

// cliContext returns a context acting as a local operator in the
// configured default tenant. The tenant row is created on first use.
func cliContext() (context.Context, error) {
	tenantID, err := db.EnsureTenant(wire.Database(), wire.Config().Tenant.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}
	actor := ctxutil.Actor{ID: "cli", TenantID: tenantID, Role: "admin"}
	return ctxutil.WithActor(context.Background(), actor), nil
}
