package primary

import "context"

// DashboardService defines the primary port for tenant-wide rollups.
type DashboardService interface {
	// GetSummary returns the tenant dashboard.
	GetSummary(ctx context.Context) (*DashboardSummary, error)

	// GetWorkload returns per-user open work counts.
	GetWorkload(ctx context.Context) ([]*UserWorkload, error)
}

// DashboardSummary is the tenant-wide rollup.
type DashboardSummary struct {
	ProjectsByStatus   map[string]int `json:"projects_by_status"`
	ActiveClients      int            `json:"active_clients"`
	OverdueSteps       int            `json:"overdue_steps"`
	PendingReviews     int            `json:"pending_reviews"`
	HoursLast30Days    float64        `json:"hours_last_30_days"`
	BillableLast30Days float64        `json:"billable_hours_last_30_days"`
}

// UserWorkload is one user's open work across the tenant.
type UserWorkload struct {
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	OpenSteps      int    `json:"open_steps"`
	OpenTasks      int    `json:"open_tasks"`
	PendingReviews int    `json:"pending_reviews"`
}
