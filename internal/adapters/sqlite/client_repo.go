package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ClientRepository implements secondary.ClientRepository with SQLite.
type ClientRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewClientRepository creates a new SQLite client repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewClientRepository(db *sql.DB, logWriter secondary.LogWriter) *ClientRepository {
	return &ClientRepository{db: db, logWriter: logWriter}
}

const clientSelectCols = "id, tenant_id, name, industry, country, contact_name, contact_email, status, created_at, updated_at"

// scanClient scans a client row into a ClientRecord.
func scanClient(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ClientRecord, error) {
	var industry, country, contactName, contactEmail sql.NullString

	record := &secondary.ClientRecord{}
	err := scanner.Scan(
		&record.ID, &record.TenantID, &record.Name, &industry, &country,
		&contactName, &contactEmail, &record.Status, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Industry = industry.String
	record.Country = country.String
	record.ContactName = contactName.String
	record.ContactEmail = contactEmail.String

	return record, nil
}

// Create persists a new client.
func (r *ClientRepository) Create(ctx context.Context, client *secondary.ClientRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO clients (id, tenant_id, name, industry, country, contact_name, contact_email, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		client.ID, client.TenantID, client.Name, nullStr(client.Industry), nullStr(client.Country),
		nullStr(client.ContactName), nullStr(client.ContactEmail), client.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "client", client.ID)
	}

	return nil
}

// GetByID retrieves a client by its ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*secondary.ClientRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+clientSelectCols+" FROM clients WHERE id = ?", id,
	)

	record, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("client %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return record, nil
}

// Update updates an existing client.
func (r *ClientRepository) Update(ctx context.Context, client *secondary.ClientRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE clients SET name = ?, industry = ?, country = ?, contact_name = ?, contact_email = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		client.Name, nullStr(client.Industry), nullStr(client.Country),
		nullStr(client.ContactName), nullStr(client.ContactEmail), client.Status, client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("client %s not found", client.ID)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "client", client.ID, "fields", "", "")
	}

	return nil
}

// Delete removes a client from persistence.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("client %s not found", id)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogDelete(ctx, "client", id)
	}

	return nil
}

// List retrieves clients matching the given filters.
func (r *ClientRepository) List(ctx context.Context, filters secondary.ClientFilters) ([]*secondary.ClientRecord, error) {
	query := "SELECT " + clientSelectCols + " FROM clients WHERE 1=1"
	args := []any{}

	if filters.TenantID != "" {
		query += " AND tenant_id = ?"
		args = append(args, filters.TenantID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*secondary.ClientRecord
	for rows.Next() {
		record, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, record)
	}

	return clients, rows.Err()
}

// CountProjects returns the number of projects for a client.
func (r *ClientRepository) CountProjects(ctx context.Context, clientID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects WHERE client_id = ?", clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count client projects: %w", err)
	}
	return count, nil
}

// Ensure ClientRepository implements the interface
var _ secondary.ClientRepository = (*ClientRepository)(nil)
