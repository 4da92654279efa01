package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewTaskRepository creates a new SQLite task repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewTaskRepository(db *sql.DB, logWriter secondary.LogWriter) *TaskRepository {
	return &TaskRepository{db: db, logWriter: logWriter}
}

const taskSelectCols = "id, project_id, title, description, status, priority, assigned_to, due_date, completed_at, created_at, updated_at"

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var (
		desc        sql.NullString
		assignedTo  sql.NullString
		dueDate     sql.NullTime
		completedAt sql.NullTime
	)

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &record.Title, &desc, &record.Status, &record.Priority,
		&assignedTo, &dueDate, &completedAt, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.AssignedTo = assignedTo.String
	record.DueDate = timePtr(dueDate)
	record.CompletedAt = timePtr(completedAt)

	return record, nil
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, project_id, title, description, status, priority, assigned_to, due_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.ProjectID, task.Title, nullStr(task.Description), task.Status, task.Priority,
		nullStr(task.AssignedTo), nullTime(task.DueDate),
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "task", task.ID)
	}

	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ?", id,
	)

	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("task %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return record, nil
}

// Update updates an existing task.
func (r *TaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?, assigned_to = ?,
		due_date = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		task.Title, nullStr(task.Description), task.Status, task.Priority, nullStr(task.AssignedTo),
		nullTime(task.DueDate), nullTime(task.CompletedAt), task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("task %s not found", task.ID)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "task", task.ID, "fields", "", "")
	}

	return nil
}

// Delete removes a task from persistence.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("task %s not found", id)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, "task", id)
	}

	return nil
}

// List retrieves tasks matching the given filters.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if filters.AssignedTo != "" {
		query += " AND assigned_to = ?"
		args = append(args, filters.AssignedTo)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}

	return tasks, rows.Err()
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
