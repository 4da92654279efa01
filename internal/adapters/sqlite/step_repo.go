package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// WorkflowStepRepository implements secondary.WorkflowStepRepository with SQLite.
type WorkflowStepRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewWorkflowStepRepository creates a new SQLite workflow step repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewWorkflowStepRepository(db *sql.DB, logWriter secondary.LogWriter) *WorkflowStepRepository {
	return &WorkflowStepRepository{db: db, logWriter: logWriter}
}

const stepSelectCols = `id, project_id, step_sequence, name, status, assigned_to,
	start_date, due_date, completed_at, completion_pct, notes, created_at, updated_at`

// scanStep scans a step row into a WorkflowStepRecord.
func scanStep(scanner interface {
	Scan(dest ...any) error
}) (*secondary.WorkflowStepRecord, error) {
	var (
		assignedTo  sql.NullString
		startDate   sql.NullTime
		dueDate     sql.NullTime
		completedAt sql.NullTime
		notes       sql.NullString
	)

	record := &secondary.WorkflowStepRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &record.StepSequence, &record.Name, &record.Status, &assignedTo,
		&startDate, &dueDate, &completedAt, &record.CompletionPct, &notes,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.AssignedTo = assignedTo.String
	record.StartDate = timePtr(startDate)
	record.DueDate = timePtr(dueDate)
	record.CompletedAt = timePtr(completedAt)
	record.Notes = notes.String

	return record, nil
}

// CreateBatch persists a set of steps for a project in one transaction.
// Rows colliding on (project_id, step_sequence) are skipped, so two
// callers instantiating the same project's workflow at once both end up
// with exactly one row per sequence.
func (r *WorkflowStepRepository) CreateBatch(ctx context.Context, steps []*secondary.WorkflowStepRecord) error {
	if len(steps) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, step := range steps {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO project_workflow_steps (id, project_id, step_sequence, name, status, assigned_to, start_date, due_date, completion_pct, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(project_id, step_sequence) DO NOTHING`,
			step.ID, step.ProjectID, step.StepSequence, step.Name, step.Status, nullStr(step.AssignedTo),
			nullTime(step.StartDate), nullTime(step.DueDate), step.CompletionPct, nullStr(step.Notes),
		)
		if err != nil {
			return fmt.Errorf("failed to create workflow step: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit workflow steps: %w", err)
	}

	return nil
}

// GetByID retrieves a step by its ID.
func (r *WorkflowStepRepository) GetByID(ctx context.Context, id string) (*secondary.WorkflowStepRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+stepSelectCols+" FROM project_workflow_steps WHERE id = ?", id,
	)

	record, err := scanStep(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("workflow step %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow step: %w", err)
	}

	return record, nil
}

// ListByProject retrieves a project's steps ordered by ascending step sequence.
func (r *WorkflowStepRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.WorkflowStepRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+stepSelectCols+" FROM project_workflow_steps WHERE project_id = ? ORDER BY step_sequence ASC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow steps: %w", err)
	}
	defer rows.Close()

	var steps []*secondary.WorkflowStepRecord
	for rows.Next() {
		record, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow step: %w", err)
		}
		steps = append(steps, record)
	}

	return steps, rows.Err()
}

// Update updates an existing step.
func (r *WorkflowStepRepository) Update(ctx context.Context, step *secondary.WorkflowStepRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE project_workflow_steps SET status = ?, assigned_to = ?, start_date = ?, due_date = ?,
		completed_at = ?, completion_pct = ?, notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		step.Status, nullStr(step.AssignedTo), nullTime(step.StartDate), nullTime(step.DueDate),
		nullTime(step.CompletedAt), step.CompletionPct, nullStr(step.Notes), step.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update workflow step: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("workflow step %s not found", step.ID)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "workflow_step", step.ID, "status", "", step.Status)
	}

	return nil
}

// Ensure WorkflowStepRepository implements the interface
var _ secondary.WorkflowStepRepository = (*WorkflowStepRepository)(nil)
