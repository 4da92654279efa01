package db

import "database/sql"

// SchemaSQL is the complete schema for fresh tpflow installs and
// reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Tests
// must build their databases from GetSchemaSQL() rather than
// hardcoding CREATE TABLE statements, so that any drift between
// repository code and schema fails immediately with "no such column".
//
// When adding columns or tables:
//  1. Append a migration in internal/db/migrations.go
//  2. Update SchemaSQL here to match the post-migration state
const SchemaSQL = `
-- Tenants (advisory firms; every tenant-scoped row hangs off one)
CREATE TABLE IF NOT EXISTS tenants (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Users (acting users; api_token is the bearer credential)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('admin', 'manager', 'staff')) DEFAULT 'staff',
	api_token TEXT NOT NULL UNIQUE,
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (tenant_id) REFERENCES tenants(id)
);

-- Clients (taxpayer groups the firm advises)
CREATE TABLE IF NOT EXISTS clients (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	name TEXT NOT NULL,
	industry TEXT,
	country TEXT,
	contact_name TEXT,
	contact_email TEXT,
	status TEXT NOT NULL CHECK(status IN ('active', 'archived')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (tenant_id) REFERENCES tenants(id)
);

-- Projects (one deliverable engagement for a client and fiscal year)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	client_id TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	deliverable_type TEXT NOT NULL CHECK(deliverable_type IN ('local_file', 'master_file', 'benchmarking_study', 'cbc_report')),
	fiscal_year INTEGER NOT NULL,
	lead_id TEXT,
	status TEXT NOT NULL CHECK(status IN ('planning', 'analysis', 'drafting', 'internal_review', 'finalization', 'delivered', 'on_hold', 'cancelled')) DEFAULT 'planning',
	due_date DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (tenant_id) REFERENCES tenants(id),
	FOREIGN KEY (client_id) REFERENCES clients(id),
	FOREIGN KEY (lead_id) REFERENCES users(id)
);

-- Workflow templates (seeded per-deliverable step catalog, read-only at runtime)
CREATE TABLE IF NOT EXISTS workflow_templates (
	id TEXT PRIMARY KEY,
	deliverable_type TEXT NOT NULL CHECK(deliverable_type IN ('local_file', 'master_file', 'benchmarking_study', 'cbc_report')),
	step_sequence INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	estimated_days INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(deliverable_type, step_sequence)
);

-- Project workflow steps (instantiated from templates on first access)
CREATE TABLE IF NOT EXISTS project_workflow_steps (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	step_sequence INTEGER NOT NULL,
	name TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('not_started', 'in_progress', 'completed', 'blocked')) DEFAULT 'not_started',
	assigned_to TEXT,
	start_date DATETIME,
	due_date DATETIME,
	completed_at DATETIME,
	completion_pct INTEGER NOT NULL DEFAULT 0 CHECK(completion_pct >= 0 AND completion_pct <= 100),
	notes TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (assigned_to) REFERENCES users(id),
	UNIQUE(project_id, step_sequence)
);

-- Tasks (ad-hoc to-dos within a project, outside the workflow)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('open', 'in_progress', 'completed')) DEFAULT 'open',
	priority TEXT NOT NULL CHECK(priority IN ('low', 'medium', 'high')) DEFAULT 'medium',
	assigned_to TEXT,
	due_date DATETIME,
	completed_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (assigned_to) REFERENCES users(id)
);

-- Time entries (billable/non-billable hours against a project)
CREATE TABLE IF NOT EXISTS time_entries (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	task_id TEXT,
	user_id TEXT NOT NULL,
	entry_date DATETIME NOT NULL,
	hours REAL NOT NULL CHECK(hours > 0 AND hours <= 24),
	billable INTEGER NOT NULL DEFAULT 1,
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE SET NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);

-- Reviews (internal review requests, optionally tied to a step)
CREATE TABLE IF NOT EXISTS reviews (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	step_id TEXT,
	requested_by TEXT NOT NULL,
	reviewer_id TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'approved', 'changes_requested')) DEFAULT 'pending',
	notes TEXT,
	decided_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (step_id) REFERENCES project_workflow_steps(id) ON DELETE SET NULL,
	FOREIGN KEY (requested_by) REFERENCES users(id),
	FOREIGN KEY (reviewer_id) REFERENCES users(id)
);

-- Documents (metadata rows; blobs live behind the storage port)
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL CHECK(category IN ('workpaper', 'report', 'source_data', 'engagement_letter', 'other')) DEFAULT 'other',
	storage_key TEXT NOT NULL UNIQUE,
	size_bytes INTEGER NOT NULL DEFAULT 0,
	content_type TEXT,
	uploaded_by TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (uploaded_by) REFERENCES users(id)
);

-- Activity log (audit trail of domain mutations)
CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	actor_id TEXT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_users_tenant ON users(tenant_id);
CREATE INDEX IF NOT EXISTS idx_users_token ON users(api_token);
CREATE INDEX IF NOT EXISTS idx_clients_tenant ON clients(tenant_id);
CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status);
CREATE INDEX IF NOT EXISTS idx_projects_tenant ON projects(tenant_id);
CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
CREATE INDEX IF NOT EXISTS idx_templates_deliverable ON workflow_templates(deliverable_type);
CREATE INDEX IF NOT EXISTS idx_steps_project ON project_workflow_steps(project_id);
CREATE INDEX IF NOT EXISTS idx_steps_status ON project_workflow_steps(status);
CREATE INDEX IF NOT EXISTS idx_steps_assignee ON project_workflow_steps(assigned_to);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assigned_to);
CREATE INDEX IF NOT EXISTS idx_time_entries_project ON time_entries(project_id);
CREATE INDEX IF NOT EXISTS idx_time_entries_user ON time_entries(user_id);
CREATE INDEX IF NOT EXISTS idx_reviews_project ON reviews(project_id);
CREATE INDEX IF NOT EXISTS idx_reviews_reviewer ON reviews(reviewer_id);
CREATE INDEX IF NOT EXISTS idx_reviews_status ON reviews(status);
CREATE INDEX IF NOT EXISTS idx_documents_project ON documents(project_id);
CREATE INDEX IF NOT EXISTS idx_activity_entity ON activity_log(entity_type, entity_id);
`

// InitSchema brings the given database to the current schema version.
// Fresh databases get SchemaSQL directly with every migration marked
// applied; databases with an existing schema_version table run any
// pending migrations instead.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		if _, err := database.Exec(SchemaSQL); err != nil {
			return err
		}
		if _, err := database.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return err
		}
		// Fresh installs are already at the latest schema; mark every
		// migration as applied so RunMigrations never replays them.
		for _, m := range migrations {
			if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	return RunMigrations(database)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
