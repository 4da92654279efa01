package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/ports/secondary"
)

// WorkflowTemplateRepository implements secondary.WorkflowTemplateRepository with SQLite.
type WorkflowTemplateRepository struct {
	db *sql.DB
}

// NewWorkflowTemplateRepository creates a new SQLite workflow template repository.
func NewWorkflowTemplateRepository(db *sql.DB) *WorkflowTemplateRepository {
	return &WorkflowTemplateRepository{db: db}
}

const templateSelectCols = "id, deliverable_type, step_sequence, name, description, estimated_days, created_at, updated_at"

// scanTemplate scans a template row into a WorkflowTemplateRecord.
func scanTemplate(scanner interface {
	Scan(dest ...any) error
}) (*secondary.WorkflowTemplateRecord, error) {
	var desc sql.NullString

	record := &secondary.WorkflowTemplateRecord{}
	err := scanner.Scan(
		&record.ID, &record.DeliverableType, &record.StepSequence, &record.Name, &desc,
		&record.EstimatedDays, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String

	return record, nil
}

// ListByDeliverableType retrieves the templates for a deliverable type
// ordered by ascending step sequence.
func (r *WorkflowTemplateRepository) ListByDeliverableType(ctx context.Context, deliverableType string) ([]*secondary.WorkflowTemplateRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+templateSelectCols+" FROM workflow_templates WHERE deliverable_type = ? ORDER BY step_sequence ASC",
		deliverableType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow templates: %w", err)
	}
	defer rows.Close()

	var templates []*secondary.WorkflowTemplateRecord
	for rows.Next() {
		record, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow template: %w", err)
		}
		templates = append(templates, record)
	}

	return templates, rows.Err()
}

// List retrieves templates matching the given filters, ordered by
// deliverable type then step sequence.
func (r *WorkflowTemplateRepository) List(ctx context.Context, filters secondary.TemplateFilters) ([]*secondary.WorkflowTemplateRecord, error) {
	query := "SELECT " + templateSelectCols + " FROM workflow_templates WHERE 1=1"
	args := []any{}

	if filters.DeliverableType != "" {
		query += " AND deliverable_type = ?"
		args = append(args, filters.DeliverableType)
	}

	query += " ORDER BY deliverable_type ASC, step_sequence ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow templates: %w", err)
	}
	defer rows.Close()

	var templates []*secondary.WorkflowTemplateRecord
	for rows.Next() {
		record, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow template: %w", err)
		}
		templates = append(templates, record)
	}

	return templates, rows.Err()
}

// Ensure WorkflowTemplateRepository implements the interface
var _ secondary.WorkflowTemplateRepository = (*WorkflowTemplateRepository)(nil)
