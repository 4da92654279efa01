package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/cli"
	"github.com/example/tpflow/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tpflow",
		Short:   "tpflow - transfer pricing engagement tracker",
		Version: version.String(),
		Long: `tpflow manages transfer pricing engagements: clients, projects,
deliverable workflows, tasks, time tracking, reviews and documents.
It serves a REST API and an MCP endpoint, and offers operator commands
for day-to-day inspection.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ./config.yaml, ~/.tpflow/config.yaml)")

	// Server and database lifecycle
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.InitCmd())

	// Operator commands
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
