// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tpflow/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedTenant inserts a test tenant and returns its ID.
func seedTenant(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "TEN-001"
	}
	if name == "" {
		name = "Test Advisory"
	}
	_, err := db.Exec("INSERT INTO tenants (id, name) VALUES (?, ?)", id, name)
	if err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}
	return id
}

// seedUser inserts a test user and returns its ID. The API token is
// derived from the ID so seeded tokens never collide.
func seedUser(t *testing.T, db *sql.DB, id, tenantID, email, role string) string {
	t.Helper()
	if id == "" {
		id = "USR-001"
	}
	if tenantID == "" {
		tenantID = "TEN-001"
	}
	if email == "" {
		email = id + "@test.example"
	}
	if role == "" {
		role = "staff"
	}
	_, err := db.Exec(
		"INSERT INTO users (id, tenant_id, email, name, role, api_token) VALUES (?, ?, ?, ?, ?, ?)",
		id, tenantID, email, "Test User "+id, role, "token-"+id,
	)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

// seedClient inserts a test client and returns its ID.
func seedClient(t *testing.T, db *sql.DB, id, tenantID, name string) string {
	t.Helper()
	if id == "" {
		id = "CLI-001"
	}
	if tenantID == "" {
		tenantID = "TEN-001"
	}
	if name == "" {
		name = "Test Client"
	}
	_, err := db.Exec("INSERT INTO clients (id, tenant_id, name, status) VALUES (?, ?, ?, 'active')", id, tenantID, name)
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	return id
}

// seedProject inserts a test project and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, tenantID, clientID, deliverableType string) string {
	t.Helper()
	if id == "" {
		id = "PRJ-001"
	}
	if tenantID == "" {
		tenantID = "TEN-001"
	}
	if clientID == "" {
		clientID = "CLI-001"
	}
	if deliverableType == "" {
		deliverableType = "local_file"
	}
	_, err := db.Exec(
		"INSERT INTO projects (id, tenant_id, client_id, name, deliverable_type, fiscal_year) VALUES (?, ?, ?, ?, ?, 2025)",
		id, tenantID, clientID, "Test Project "+id, deliverableType,
	)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedStep inserts a test workflow step and returns its ID.
func seedStep(t *testing.T, db *sql.DB, id, projectID string, sequence int, name, status string) string {
	t.Helper()
	if id == "" {
		id = "STEP-001"
	}
	if projectID == "" {
		projectID = "PRJ-001"
	}
	if name == "" {
		name = "Test Step"
	}
	if status == "" {
		status = "not_started"
	}
	_, err := db.Exec(
		"INSERT INTO project_workflow_steps (id, project_id, step_sequence, name, status) VALUES (?, ?, ?, ?, ?)",
		id, projectID, sequence, name, status,
	)
	if err != nil {
		t.Fatalf("failed to seed workflow step: %v", err)
	}
	return id
}

// seedTemplate inserts a test workflow template and returns its ID.
func seedTemplate(t *testing.T, db *sql.DB, id, deliverableType string, sequence int, name string, estimatedDays int) string {
	t.Helper()
	if id == "" {
		id = "TPL-001"
	}
	if deliverableType == "" {
		deliverableType = "local_file"
	}
	if name == "" {
		name = "Test Template Step"
	}
	_, err := db.Exec(
		"INSERT INTO workflow_templates (id, deliverable_type, step_sequence, name, estimated_days) VALUES (?, ?, ?, ?, ?)",
		id, deliverableType, sequence, name, estimatedDays,
	)
	if err != nil {
		t.Fatalf("failed to seed workflow template: %v", err)
	}
	return id
}

// seedTask inserts a test task and returns its ID.
func seedTask(t *testing.T, db *sql.DB, id, projectID, title string) string {
	t.Helper()
	if id == "" {
		id = "TSK-001"
	}
	if projectID == "" {
		projectID = "PRJ-001"
	}
	if title == "" {
		title = "Test Task"
	}
	_, err := db.Exec(
		"INSERT INTO tasks (id, project_id, title, status, priority) VALUES (?, ?, ?, 'open', 'medium')",
		id, projectID, title,
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}

// seedTimeEntry inserts a test time entry and returns its ID.
func seedTimeEntry(t *testing.T, db *sql.DB, id, projectID, userID string, hours float64, billable bool) string {
	t.Helper()
	if id == "" {
		id = "TIME-001"
	}
	if projectID == "" {
		projectID = "PRJ-001"
	}
	if userID == "" {
		userID = "USR-001"
	}
	_, err := db.Exec(
		"INSERT INTO time_entries (id, project_id, user_id, entry_date, hours, billable) VALUES (?, ?, ?, DATE('now'), ?, ?)",
		id, projectID, userID, hours, billable,
	)
	if err != nil {
		t.Fatalf("failed to seed time entry: %v", err)
	}
	return id
}

// seedReview inserts a test review and returns its ID.
func seedReview(t *testing.T, db *sql.DB, id, projectID, requestedBy, reviewerID, status string) string {
	t.Helper()
	if id == "" {
		id = "REV-001"
	}
	if projectID == "" {
		projectID = "PRJ-001"
	}
	if requestedBy == "" {
		requestedBy = "USR-001"
	}
	if reviewerID == "" {
		reviewerID = "USR-002"
	}
	if status == "" {
		status = "pending"
	}
	_, err := db.Exec(
		"INSERT INTO reviews (id, project_id, requested_by, reviewer_id, status) VALUES (?, ?, ?, ?, ?)",
		id, projectID, requestedBy, reviewerID, status,
	)
	if err != nil {
		t.Fatalf("failed to seed review: %v", err)
	}
	return id
}
