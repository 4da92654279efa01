package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tpflow/internal/ports/secondary"
)

// StatsRepository implements secondary.StatsRepository with SQLite.
// Everything here is read-only aggregate queries for the dashboard.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new SQLite stats repository.
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// ProjectCountsByStatus returns project counts keyed by status.
func (r *StatsRepository) ProjectCountsByStatus(ctx context.Context, tenantID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM projects WHERE tenant_id = ? GROUP BY status",
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan project count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// ActiveClientCount returns the number of active clients.
func (r *StatsRepository) ActiveClientCount(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM clients WHERE tenant_id = ? AND status = 'active'",
		tenantID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active clients: %w", err)
	}

	return count, nil
}

// OverdueStepCount returns the number of steps past their due date and
// not completed.
func (r *StatsRepository) OverdueStepCount(ctx context.Context, tenantID string, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		FROM project_workflow_steps s
		JOIN projects p ON p.id = s.project_id
		WHERE p.tenant_id = ? AND s.due_date IS NOT NULL AND s.due_date < ? AND s.status != 'completed'`,
		tenantID, now,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue steps: %w", err)
	}

	return count, nil
}

// PendingReviewCount returns the number of pending reviews.
func (r *StatsRepository) PendingReviewCount(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		FROM reviews r
		JOIN projects p ON p.id = r.project_id
		WHERE p.tenant_id = ? AND r.status = 'pending'`,
		tenantID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending reviews: %w", err)
	}

	return count, nil
}

// HoursLogged returns total and billable hours since the cutoff.
func (r *StatsRepository) HoursLogged(ctx context.Context, tenantID string, since time.Time) (total, billable float64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(te.hours), 0), COALESCE(SUM(CASE WHEN te.billable = 1 THEN te.hours ELSE 0 END), 0)
		FROM time_entries te
		JOIN projects p ON p.id = te.project_id
		WHERE p.tenant_id = ? AND te.entry_date >= ?`,
		tenantID, since,
	).Scan(&total, &billable)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to total logged hours: %w", err)
	}

	return total, billable, nil
}

// WorkloadByUser returns per-user open work counts. Users with nothing
// assigned still appear with zero counts.
func (r *StatsRepository) WorkloadByUser(ctx context.Context, tenantID string) ([]*secondary.WorkloadRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name,
			(SELECT COUNT(*) FROM project_workflow_steps s JOIN projects p ON p.id = s.project_id
				WHERE s.assigned_to = u.id AND p.tenant_id = ? AND s.status IN ('not_started', 'in_progress', 'blocked')),
			(SELECT COUNT(*) FROM tasks t JOIN projects p ON p.id = t.project_id
				WHERE t.assigned_to = u.id AND p.tenant_id = ? AND t.status != 'completed'),
			(SELECT COUNT(*) FROM reviews r JOIN projects p ON p.id = r.project_id
				WHERE r.reviewer_id = u.id AND p.tenant_id = ? AND r.status = 'pending')
		FROM users u
		WHERE u.tenant_id = ? AND u.active = 1
		ORDER BY u.name ASC`,
		tenantID, tenantID, tenantID, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute user workloads: %w", err)
	}
	defer rows.Close()

	var workloads []*secondary.WorkloadRecord
	for rows.Next() {
		record := &secondary.WorkloadRecord{}
		if err := rows.Scan(&record.UserID, &record.UserName, &record.OpenSteps, &record.OpenTasks, &record.PendingReviews); err != nil {
			return nil, fmt.Errorf("failed to scan user workload: %w", err)
		}
		workloads = append(workloads, record)
	}

	return workloads, rows.Err()
}

// Ensure StatsRepository implements the interface
var _ secondary.StatsRepository = (*StatsRepository)(nil)
