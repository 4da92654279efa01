package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewProjectRepository creates a new SQLite project repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewProjectRepository(db *sql.DB, logWriter secondary.LogWriter) *ProjectRepository {
	return &ProjectRepository{db: db, logWriter: logWriter}
}

// projectSelectCols joins the client name for display.
const projectSelectCols = `p.id, p.tenant_id, p.client_id, c.name, p.name, p.description,
	p.deliverable_type, p.fiscal_year, p.lead_id, p.status, p.due_date, p.created_at, p.updated_at`

// scanProject scans a project row into a ProjectRecord.
func scanProject(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ProjectRecord, error) {
	var (
		desc    sql.NullString
		leadID  sql.NullString
		dueDate sql.NullTime
	)

	record := &secondary.ProjectRecord{}
	err := scanner.Scan(
		&record.ID, &record.TenantID, &record.ClientID, &record.ClientName, &record.Name, &desc,
		&record.DeliverableType, &record.FiscalYear, &leadID, &record.Status, &dueDate,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.LeadID = leadID.String
	record.DueDate = timePtr(dueDate)

	return record, nil
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, tenant_id, client_id, name, description, deliverable_type, fiscal_year, lead_id, status, due_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		project.ID, project.TenantID, project.ClientID, project.Name, nullStr(project.Description),
		project.DeliverableType, project.FiscalYear, nullStr(project.LeadID), project.Status, nullTime(project.DueDate),
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "project", project.ID)
	}

	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectSelectCols+" FROM projects p JOIN clients c ON c.id = p.client_id WHERE p.id = ?", id,
	)

	record, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("project %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return record, nil
}

// Update updates an existing project's editable fields.
func (r *ProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, description = ?, lead_id = ?, due_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		project.Name, nullStr(project.Description), nullStr(project.LeadID), nullTime(project.DueDate), project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("project %s not found", project.ID)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "project", project.ID, "fields", "", "")
	}

	return nil
}

// UpdateStatus sets just the project status.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	var current string
	err := r.db.QueryRowContext(ctx, "SELECT status FROM projects WHERE id = ?", id).Scan(&current)
	if err == sql.ErrNoRows {
		return app.NotFoundf("project %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get project status: %w", err)
	}

	if current == status {
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE projects SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "project", id, "status", current, status)
	}

	return nil
}

// Delete removes a project; child rows cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("project %s not found", id)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, "project", id)
	}

	return nil
}

// List retrieves projects matching the given filters.
func (r *ProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectSelectCols + " FROM projects p JOIN clients c ON c.id = p.client_id WHERE 1=1"
	args := []any{}

	if filters.TenantID != "" {
		query += " AND p.tenant_id = ?"
		args = append(args, filters.TenantID)
	}

	if filters.ClientID != "" {
		query += " AND p.client_id = ?"
		args = append(args, filters.ClientID)
	}

	if filters.Status != "" {
		query += " AND p.status = ?"
		args = append(args, filters.Status)
	}

	if filters.DeliverableType != "" {
		query += " AND p.deliverable_type = ?"
		args = append(args, filters.DeliverableType)
	}

	if filters.FiscalYear != 0 {
		query += " AND p.fiscal_year = ?"
		args = append(args, filters.FiscalYear)
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, record)
	}

	return projects, rows.Err()
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
