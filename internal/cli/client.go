package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/wire"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
	Long:  `Create, inspect and archive the clients engagements are run for.`,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}
		status, _ := cmd.Flags().GetString("status")
		return wire.ClientAdapter().List(ctx, status)
	},
}

var clientShowCmd = &cobra.Command{
	Use:   "show [client-id]",
	Short: "Show client details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}
		_, err = wire.ClientAdapter().Show(ctx, args[0])
		return err
	},
}

var clientCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}
		industry, _ := cmd.Flags().GetString("industry")
		country, _ := cmd.Flags().GetString("country")
		return wire.ClientAdapter().Create(ctx, args[0], industry, country)
	},
}

var clientArchiveCmd = &cobra.Command{
	Use:   "archive [client-id]",
	Short: "Archive a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}
		return wire.ClientAdapter().Archive(ctx, args[0])
	},
}

func init() {
	clientListCmd.Flags().String("status", "", "Filter by status (active, archived)")
	clientCreateCmd.Flags().String("industry", "", "Client industry")
	clientCreateCmd.Flags().String("country", "", "Client country code")

	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientShowCmd)
	clientCmd.AddCommand(clientCreateCmd)
	clientCmd.AddCommand(clientArchiveCmd)
}

// ClientCmd returns the client command.
func ClientCmd() *cobra.Command {
	return clientCmd
}
