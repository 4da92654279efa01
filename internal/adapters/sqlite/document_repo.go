package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// DocumentRepository implements secondary.DocumentRepository with SQLite.
// Only metadata lives here; blob contents go through the BlobStore port.
type DocumentRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewDocumentRepository creates a new SQLite document repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewDocumentRepository(db *sql.DB, logWriter secondary.LogWriter) *DocumentRepository {
	return &DocumentRepository{db: db, logWriter: logWriter}
}

const documentSelectCols = "id, project_id, name, category, storage_key, size_bytes, content_type, uploaded_by, created_at, updated_at"

// scanDocument scans a document row into a DocumentRecord.
func scanDocument(scanner interface {
	Scan(dest ...any) error
}) (*secondary.DocumentRecord, error) {
	var contentType sql.NullString

	record := &secondary.DocumentRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &record.Name, &record.Category, &record.StorageKey,
		&record.SizeBytes, &contentType, &record.UploadedBy, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ContentType = contentType.String

	return record, nil
}

// Create persists a new document row.
func (r *DocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (id, project_id, name, category, storage_key, size_bytes, content_type, uploaded_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		doc.ID, doc.ProjectID, doc.Name, doc.Category, doc.StorageKey,
		doc.SizeBytes, nullStr(doc.ContentType), doc.UploadedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "document", doc.ID)
	}

	return nil
}

// GetByID retrieves a document by its ID.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+documentSelectCols+" FROM documents WHERE id = ?", id,
	)

	record, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return record, nil
}

// Delete removes a document row from persistence.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("document %s not found", id)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, "document", id)
	}

	return nil
}

// ListByProject retrieves a project's documents, newest first.
func (r *DocumentRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+documentSelectCols+" FROM documents WHERE project_id = ? ORDER BY created_at DESC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*secondary.DocumentRecord
	for rows.Next() {
		record, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, record)
	}

	return docs, rows.Err()
}

// Ensure DocumentRepository implements the interface
var _ secondary.DocumentRepository = (*DocumentRepository)(nil)
