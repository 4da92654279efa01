package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelectCols = "id, tenant_id, email, name, role, api_token, active, created_at, updated_at"

// scanUser scans a user row into a UserRecord.
func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*secondary.UserRecord, error) {
	record := &secondary.UserRecord{}
	err := scanner.Scan(
		&record.ID, &record.TenantID, &record.Email, &record.Name, &record.Role,
		&record.APIToken, &record.Active, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, tenant_id, email, name, role, api_token, active) VALUES (?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.TenantID, user.Email, user.Name, user.Role, user.APIToken, user.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE id = ?", id,
	)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return record, nil
}

// GetByToken retrieves an active user by its API token.
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE api_token = ? AND active = 1", token,
	)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("no active user for token")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by token: %w", err)
	}

	return record, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userSelectCols+" FROM users WHERE email = ?", email,
	)

	record, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, app.NotFoundf("user %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return record, nil
}

// List retrieves users matching the given filters.
func (r *UserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	query := "SELECT " + userSelectCols + " FROM users WHERE 1=1"
	args := []any{}

	if filters.TenantID != "" {
		query += " AND tenant_id = ?"
		args = append(args, filters.TenantID)
	}

	if filters.Role != "" {
		query += " AND role = ?"
		args = append(args, filters.Role)
	}

	if filters.ActiveOnly {
		query += " AND active = 1"
	}

	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		record, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, record)
	}

	return users, rows.Err()
}

// Update updates an existing user.
func (r *UserRepository) Update(ctx context.Context, user *secondary.UserRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET email = ?, name = ?, role = ?, active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		user.Email, user.Name, user.Role, user.Active, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return app.NotFoundf("user %s not found", user.ID)
	}

	return nil
}

// Ensure UserRepository implements the interface
var _ secondary.UserRepository = (*UserRepository)(nil)
