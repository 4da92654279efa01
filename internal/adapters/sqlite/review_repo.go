package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ReviewRepository implements secondary.ReviewRepository with SQLite.
type ReviewRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewReviewRepository creates a new SQLite review repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewReviewRepository(db *sql.DB, logWriter secondary.LogWriter) *ReviewRepository {
	return &ReviewRepository{db: db, logWriter: logWriter}
}

const reviewSelectCols = "r.id, r.project_id, r.step_id, r.requested_by, r.reviewer_id, r.status, r.notes, r.decided_at, r.created_at, r.updated_at"

// scanReview scans a review row into a ReviewRecord.
func scanReview(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ReviewRecord, error) {
	var (
		stepID    sql.NullString
		notes     sql.NullString
		decidedAt sql.NullTime
	)

	record := &secondary.ReviewRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &stepID, &record.RequestedBy, &record.ReviewerID,
		&record.Status, &notes, &decidedAt, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.StepID = stepID.String
	record.Notes = notes.String
	record.DecidedAt = timePtr(decidedAt)

	return record, nil
}

// Create persists a new review.
func (r *ReviewRepository) Create(ctx context.Context, review *secondary.ReviewRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (id, project_id, step_id, requested_by, reviewer_id, status, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		review.ID, review.ProjectID, nullStr(review.StepID), review.RequestedBy, review.ReviewerID,
		review.Status, nullStr(review.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "review", review.ID)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*secondary.ReviewRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reviewSelectCols+" FROM reviews r WHERE r.id = ?", id,
	)

	record, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("review %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return record, nil
}

// Update updates an existing review.
func (r *ReviewRepository) Update(ctx context.Context, review *secondary.ReviewRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET status = ?, notes = ?, decided_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		review.Status, nullStr(review.Notes), nullTime(review.DecidedAt), review.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("review %s not found", review.ID)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "review", review.ID, "status", "", review.Status)
	}

	return nil
}

// List retrieves reviews matching the given filters. TenantID scopes
// through the owning project.
func (r *ReviewRepository) List(ctx context.Context, filters secondary.ReviewFilters) ([]*secondary.ReviewRecord, error) {
	query := "SELECT " + reviewSelectCols + " FROM reviews r JOIN projects p ON p.id = r.project_id WHERE 1=1"
	args := []any{}

	if filters.TenantID != "" {
		query += " AND p.tenant_id = ?"
		args = append(args, filters.TenantID)
	}

	if filters.ProjectID != "" {
		query += " AND r.project_id = ?"
		args = append(args, filters.ProjectID)
	}

	if filters.ReviewerID != "" {
		query += " AND r.reviewer_id = ?"
		args = append(args, filters.ReviewerID)
	}

	if filters.Status != "" {
		query += " AND r.status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY r.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*secondary.ReviewRecord
	for rows.Next() {
		record, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, record)
	}

	return reviews, rows.Err()
}

// Ensure ReviewRepository implements the interface
var _ secondary.ReviewRepository = (*ReviewRepository)(nil)
