package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tpflow/internal/wire"
)

// projectStatusOrder lists lifecycle statuses in display order.
var projectStatusOrder = []string{
	"planning",
	"analysis",
	"drafting",
	"internal_review",
	"finalization",
	"delivered",
	"on_hold",
	"cancelled",
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the firm dashboard",
	Long: `Show project counts by status, review and deadline pressure, and
per-user open workload for the configured tenant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		ctx, err := cliContext()
		if err != nil {
			return err
		}

		summary, err := wire.DashboardService().GetSummary(ctx)
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		fmt.Println("Projects:")
		printed := 0
		for _, status := range projectStatusOrder {
			if count, ok := summary.ProjectsByStatus[status]; ok {
				fmt.Printf("  %4d  %s\n", count, colorizeProjectStatus(status))
				printed++
			}
		}
		// Statuses outside the known lifecycle, if any, go last.
		var extras []string
		for status := range summary.ProjectsByStatus {
			if !knownProjectStatus(status) {
				extras = append(extras, status)
			}
		}
		sort.Strings(extras)
		for _, status := range extras {
			fmt.Printf("  %4d  %s\n", summary.ProjectsByStatus[status], status)
			printed++
		}
		if printed == 0 {
			fmt.Println("  (no projects)")
		}

		fmt.Println()
		fmt.Printf("Active clients:  %d\n", summary.ActiveClients)
		fmt.Printf("Overdue steps:   %s\n", colorizeCount(summary.OverdueSteps, color.FgRed))
		fmt.Printf("Pending reviews: %s\n", colorizeCount(summary.PendingReviews, color.FgYellow))
		fmt.Printf("Hours last 30d:  %.1f (%.1f billable)\n", summary.HoursLast30Days, summary.BillableLast30Days)

		workload, err := wire.DashboardService().GetWorkload(ctx)
		if err != nil {
			return fmt.Errorf("failed to load workload: %w", err)
		}
		if len(workload) == 0 {
			return nil
		}

		fmt.Println("\nWorkload:")
		for _, w := range workload {
			name := w.UserName
			if name == "" {
				name = w.UserID
			}
			fmt.Printf("  %-24s %2d steps  %2d tasks  %2d reviews\n",
				name, w.OpenSteps, w.OpenTasks, w.PendingReviews)
		}
		return nil
	},
}

func knownProjectStatus(status string) bool {
	for _, s := range projectStatusOrder {
		if s == status {
			return true
		}
	}
	return false
}

// colorizeProjectStatus formats a project status with semantic color.
func colorizeProjectStatus(status string) string {
	switch status {
	case "planning":
		return color.New(color.FgHiCyan).Sprint(status)
	case "analysis":
		return color.New(color.FgHiBlue).Sprint(status)
	case "drafting":
		return color.New(color.FgBlue).Sprint(status)
	case "internal_review":
		return color.New(color.FgHiMagenta).Sprint(status)
	case "finalization":
		return color.New(color.FgHiYellow).Sprint(status)
	case "delivered":
		return color.New(color.FgHiGreen).Sprint(status)
	case "on_hold":
		return color.New(color.FgYellow).Sprint(status)
	case "cancelled":
		return color.New(color.FgHiBlack).Sprint(status)
	default:
		return status
	}
}

// colorizeCount highlights a nonzero count; zero stays plain.
func colorizeCount(n int, attr color.Attribute) string {
	if n == 0 {
		return "0"
	}
	return color.New(attr).Sprintf("%d", n)
}

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	return statusCmd
}
