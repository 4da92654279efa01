package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/config"
	"github.com/example/tpflow/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load workflow templates into the database",
	Long: `Load the built-in workflow templates. Safe to run repeatedly.
With --demo, also load a demo tenant with users, clients and a project
in mid-flight. The demo data is created once; rerunning --demo on the
same database fails.`,
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
		if err := db.SeedTemplates(database); err != nil {
			return fmt.Errorf("failed to seed templates: %w", err)
		}
		fmt.Println("✓ Workflow templates loaded")

		demo, _ := cmd.Flags().GetBool("demo")
		if !demo {
			return nil
		}
		if err := db.SeedDemo(database); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		fmt.Println("✓ Demo tenant loaded")
		fmt.Println("\nDemo API tokens:")
		fmt.Println("  admin:   demo-admin-token")
		fmt.Println("  manager: demo-manager-token")
		fmt.Println("  staff:   demo-staff-token")
		return nil
	},
}

func init() {
	seedCmd.Flags().Bool("demo", false, "Also load demo tenant data")
}

// SeedCmd returns the seed command.
func SeedCmd() *cobra.Command {
	return seedCmd
}
