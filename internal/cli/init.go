package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Long: `Write a commented starter config file (default: config.yaml).
Refuses to overwrite an existing file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteStarter(path); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote starter config: %s\n", path)
		fmt.Println("  Edit it, then run: tpflow migrate && tpflow seed && tpflow serve")
		return nil
	},
}

// InitCmd returns the init command.
func InitCmd() *cobra.Command {
	return initCmd
}
