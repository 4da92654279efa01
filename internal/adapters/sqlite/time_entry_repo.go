package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// TimeEntryRepository implements secondary.TimeEntryRepository with SQLite.
type TimeEntryRepository struct {
	db *sql.DB
}

// NewTimeEntryRepository creates a new SQLite time entry repository.
func NewTimeEntryRepository(db *sql.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

const timeEntrySelectCols = "id, project_id, task_id, user_id, entry_date, hours, billable, description, created_at, updated_at"

// scanTimeEntry scans a time entry row into a TimeEntryRecord.
func scanTimeEntry(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TimeEntryRecord, error) {
	var (
		taskID sql.NullString
		desc   sql.NullString
	)

	record := &secondary.TimeEntryRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &taskID, &record.UserID, &record.EntryDate,
		&record.Hours, &record.Billable, &desc, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.TaskID = taskID.String
	record.Description = desc.String

	return record, nil
}

// Create persists a new time entry.
func (r *TimeEntryRepository) Create(ctx context.Context, entry *secondary.TimeEntryRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO time_entries (id, project_id, task_id, user_id, entry_date, hours, billable, description) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.ProjectID, nullStr(entry.TaskID), entry.UserID, entry.EntryDate,
		entry.Hours, entry.Billable, nullStr(entry.Description),
	)
	if err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}

	return nil
}

// GetByID retrieves a time entry by its ID.
func (r *TimeEntryRepository) GetByID(ctx context.Context, id string) (*secondary.TimeEntryRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+timeEntrySelectCols+" FROM time_entries WHERE id = ?", id,
	)

	record, err := scanTimeEntry(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("time entry %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}

	return record, nil
}

// Delete removes a time entry from persistence.
func (r *TimeEntryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM time_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("time entry %s not found", id)
	}

	return nil
}

// List retrieves time entries matching the given filters.
func (r *TimeEntryRepository) List(ctx context.Context, filters secondary.TimeEntryFilters) ([]*secondary.TimeEntryRecord, error) {
	query := "SELECT " + timeEntrySelectCols + " FROM time_entries WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}

	if filters.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filters.UserID)
	}

	if filters.From != nil {
		query += " AND entry_date >= ?"
		args = append(args, *filters.From)
	}

	if filters.To != nil {
		query += " AND entry_date <= ?"
		args = append(args, *filters.To)
	}

	query += " ORDER BY entry_date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.TimeEntryRecord
	for rows.Next() {
		record, err := scanTimeEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, record)
	}

	return entries, rows.Err()
}

// Totals returns the hour rollup for a project.
func (r *TimeEntryRepository) Totals(ctx context.Context, projectID string) (*secondary.TimeTotalsRecord, error) {
	totals := &secondary.TimeTotalsRecord{}

	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(hours), 0), COALESCE(SUM(CASE WHEN billable = 1 THEN hours ELSE 0 END), 0) FROM time_entries WHERE project_id = ?",
		projectID,
	).Scan(&totals.TotalHours, &totals.BillableHours)
	if err != nil {
		return nil, fmt.Errorf("failed to total time entries: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT te.user_id, u.name, SUM(te.hours)
		FROM time_entries te
		JOIN users u ON u.id = te.user_id
		WHERE te.project_id = ?
		GROUP BY te.user_id, u.name
		ORDER BY SUM(te.hours) DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to total time entries by user: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share secondary.UserHoursRecord
		if err := rows.Scan(&share.UserID, &share.UserName, &share.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan user hours: %w", err)
		}
		totals.ByUser = append(totals.ByUser, share)
	}

	return totals, rows.Err()
}

// Ensure TimeEntryRepository implements the interface
var _ secondary.TimeEntryRepository = (*TimeEntryRepository)(nil)
