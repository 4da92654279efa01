package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Inspect projects",
	Long:  `List projects and inspect their workflow state from the terminal.`,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}
		status, _ := cmd.Flags().GetString("status")
		clientID, _ := cmd.Flags().GetString("client")
		return wire.ProjectAdapter().List(ctx, status, clientID)
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show a project and its workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}
		_, err = wire.ProjectAdapter().Show(ctx, args[0])
		return err
	},
}

var projectProgressCmd = &cobra.Command{
	Use:   "progress [project-id]",
	Short: "Show workflow progress for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().Progress(ctx, args[0])
	},
}

func init() {
	projectListCmd.Flags().String("status", "", "Filter by status")
	projectListCmd.Flags().String("client", "", "Filter by client ID")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectProgressCmd)
}

// ProjectCmd returns the project command.
func ProjectCmd() *cobra.Command {
	return projectCmd
}
