package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/config"
	"github.com/example/tpflow/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		if err := db.InitSchema(database); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		fmt.Printf("✓ Database schema up to date: %s\n", cfg.DB.Path)
		return nil
	},
}

// MigrateCmd returns the migrate command.
func MigrateCmd() *cobra.Command {
	return migrateCmd
}
