package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// templateCatalog is the seeded workflow step catalog. Sequences are
// contiguous from 1 per deliverable type; estimated_days drive the
// default step durations shown to engagement leads.
var templateCatalog = []struct {
	deliverableType string
	sequence        int
	name            string
	description     string
	estimatedDays   int
}{
	{"local_file", 1, "Scoping & Kickoff", "Confirm scope, entities covered and deadlines with the client", 5},
	{"local_file", 2, "Data Collection", "Gather financials, intercompany agreements and questionnaire responses", 10},
	{"local_file", 3, "Functional Analysis", "FAR interviews and characterisation of the tested transactions", 10},
	{"local_file", 4, "Economic Analysis", "Method selection and application to the tested transactions", 10},
	{"local_file", 5, "Benchmarking", "Comparable company search and interquartile range", 10},
	{"local_file", 6, "Report Drafting", "Draft the local file narrative and appendices", 10},
	{"local_file", 7, "Internal Review & Delivery", "Partner review, client comments and final delivery", 5},

	{"master_file", 1, "Scoping & Kickoff", "Confirm group perimeter and reporting deadlines", 5},
	{"master_file", 2, "Group Structure Review", "Legal and operational structure, financing arrangements", 7},
	{"master_file", 3, "Data Collection", "Group financials, intangibles registers, ruling inventory", 10},
	{"master_file", 4, "Value Chain Analysis", "Profit drivers and contribution of group members", 10},
	{"master_file", 5, "Report Drafting", "Draft the master file per the local format requirements", 10},
	{"master_file", 6, "Internal Review & Delivery", "Partner review and final delivery", 5},

	{"benchmarking_study", 1, "Scoping & Kickoff", "Agree tested party, PLI and search region", 3},
	{"benchmarking_study", 2, "Search Strategy", "Database selection and screening criteria", 5},
	{"benchmarking_study", 3, "Screening & Rejection", "Quantitative and qualitative screening with rejection log", 10},
	{"benchmarking_study", 4, "Financial Analysis", "Adjustments and interquartile range computation", 5},
	{"benchmarking_study", 5, "Report & Delivery", "Benchmarking memo and delivery", 5},

	{"cbc_report", 1, "Scoping & Kickoff", "Confirm constituent entities and filing obligations", 3},
	{"cbc_report", 2, "Entity Data Collection", "Collect table 1-3 source data per jurisdiction", 10},
	{"cbc_report", 3, "Table Preparation", "Populate and reconcile the CbC tables", 7},
	{"cbc_report", 4, "Consistency Checks", "Cross-table checks and prior-year variance review", 5},
	{"cbc_report", 5, "Filing & Delivery", "XML generation, validation and filing", 5},
}

// SeedTemplates loads the workflow template catalog. Idempotent:
// existing (deliverable_type, step_sequence) rows are left untouched.
func SeedTemplates(database *sql.DB) error {
	for _, t := range templateCatalog {
		if _, err := database.Exec(
			`INSERT INTO workflow_templates (id, deliverable_type, step_sequence, name, description, estimated_days)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(deliverable_type, step_sequence) DO NOTHING`,
			uuid.New().String(), t.deliverableType, t.sequence, t.name, t.description, t.estimatedDays,
		); err != nil {
			return fmt.Errorf("seed templates: %w", err)
		}
	}
	return nil
}

// EnsureTenant returns the id of the tenant with the given name,
// creating it if missing.
func EnsureTenant(database *sql.DB, name string) (string, error) {
	var id string
	err := database.QueryRow("SELECT id FROM tenants WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("lookup tenant: %w", err)
	}

	id = uuid.New().String()
	if _, err := database.Exec("INSERT INTO tenants (id, name) VALUES (?, ?)", id, name); err != nil {
		return "", fmt.Errorf("create tenant: %w", err)
	}
	return id, nil
}

// EnsureAdminUser guarantees an active admin exists for the tenant and
// returns its API token. When the user is created and token is empty a
// fresh token is generated.
func EnsureAdminUser(database *sql.DB, tenantID, email, name, token string) (string, error) {
	var existing string
	err := database.QueryRow("SELECT api_token FROM users WHERE email = ?", email).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("lookup admin user: %w", err)
	}

	if token == "" {
		token = uuid.New().String()
	}
	if _, err := database.Exec(
		"INSERT INTO users (id, tenant_id, email, name, role, api_token, active) VALUES (?, ?, ?, ?, 'admin', ?, 1)",
		uuid.New().String(), tenantID, email, name, token,
	); err != nil {
		return "", fmt.Errorf("create admin user: %w", err)
	}
	return token, nil
}

// SeedDemo populates the database with development fixtures: one firm,
// a few users, two clients and a project mid-flight through its
// workflow. Not idempotent; intended for fresh databases only.
func SeedDemo(database *sql.DB) error {
	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	if _, err := database.Exec(
		"INSERT INTO tenants (id, name, created_at) VALUES ('TEN-001', 'Meridian Tax Advisory', ?)", nowStr,
	); err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}

	users := []struct{ id, email, name, role, token string }{
		{"USR-001", "elena.vargas@meridian.test", "Elena Vargas", "admin", "demo-admin-token"},
		{"USR-002", "tomas.lindqvist@meridian.test", "Tomas Lindqvist", "manager", "demo-manager-token"},
		{"USR-003", "priya.raman@meridian.test", "Priya Raman", "staff", "demo-staff-token"},
	}
	for _, u := range users {
		if _, err := database.Exec(
			"INSERT INTO users (id, tenant_id, email, name, role, api_token, active, created_at) VALUES (?, 'TEN-001', ?, ?, ?, ?, 1, ?)",
			u.id, u.email, u.name, u.role, u.token, nowStr,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	clients := []struct{ id, name, industry, country string }{
		{"CLI-001", "Nordwind Logistics Group", "Transportation", "DE"},
		{"CLI-002", "Helios Components BV", "Electronics", "NL"},
	}
	for _, c := range clients {
		if _, err := database.Exec(
			"INSERT INTO clients (id, tenant_id, name, industry, country, status, created_at) VALUES (?, 'TEN-001', ?, ?, ?, 'active', ?)",
			c.id, c.name, c.industry, c.country, nowStr,
		); err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
	}

	fiscalYear := now.Year() - 1
	projects := []struct {
		id, clientID, name, deliverable, status string
	}{
		{"PRJ-001", "CLI-001", "Nordwind DE Local File", "local_file", "analysis"},
		{"PRJ-002", "CLI-002", "Helios Benchmarking Study", "benchmarking_study", "planning"},
	}
	for _, p := range projects {
		if _, err := database.Exec(
			"INSERT INTO projects (id, tenant_id, client_id, name, deliverable_type, fiscal_year, lead_id, status, created_at) VALUES (?, 'TEN-001', ?, ?, ?, ?, 'USR-002', ?, ?)",
			p.id, p.clientID, p.name, p.deliverable, fiscalYear, p.status, nowStr,
		); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}

	// PRJ-001 is mid-flight: step 1 done, step 2 underway.
	steps := []struct {
		id       string
		sequence int
		name     string
		status   string
		pct      int
	}{
		{"STEP-001", 1, "Scoping & Kickoff", "completed", 100},
		{"STEP-002", 2, "Data Collection", "in_progress", 40},
		{"STEP-003", 3, "Functional Analysis", "not_started", 0},
		{"STEP-004", 4, "Economic Analysis", "not_started", 0},
		{"STEP-005", 5, "Benchmarking", "not_started", 0},
		{"STEP-006", 6, "Report Drafting", "not_started", 0},
		{"STEP-007", 7, "Internal Review & Delivery", "not_started", 0},
	}
	for _, s := range steps {
		var startDate, completedAt interface{}
		if s.status != "not_started" {
			startDate = now.AddDate(0, 0, -14).Format(time.RFC3339)
		}
		if s.status == "completed" {
			completedAt = now.AddDate(0, 0, -7).Format(time.RFC3339)
		}
		if _, err := database.Exec(
			"INSERT INTO project_workflow_steps (id, project_id, step_sequence, name, status, assigned_to, start_date, completed_at, completion_pct, created_at) VALUES (?, 'PRJ-001', ?, ?, ?, 'USR-003', ?, ?, ?, ?)",
			s.id, s.sequence, s.name, s.status, startDate, completedAt, s.pct, nowStr,
		); err != nil {
			return fmt.Errorf("seed steps: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO tasks (id, project_id, title, description, status, priority, assigned_to, created_at) VALUES ('TSK-001', 'PRJ-001', 'Chase missing intercompany agreements', 'Loan and service agreements for the DE entities still outstanding', 'open', 'high', 'USR-003', ?)",
		nowStr,
	); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}

	entries := []struct {
		id      string
		hours   float64
		daysAgo int
		desc    string
	}{
		{"TIME-001", 6.5, 10, "Kickoff call and scope memo"},
		{"TIME-002", 3.0, 5, "Questionnaire follow-ups"},
	}
	for _, e := range entries {
		if _, err := database.Exec(
			"INSERT INTO time_entries (id, project_id, user_id, entry_date, hours, billable, description, created_at) VALUES (?, 'PRJ-001', 'USR-003', ?, ?, 1, ?, ?)",
			e.id, now.AddDate(0, 0, -e.daysAgo).Format(time.RFC3339), e.hours, e.desc, nowStr,
		); err != nil {
			return fmt.Errorf("seed time entries: %w", err)
		}
	}

	if _, err := database.Exec(
		"INSERT INTO reviews (id, project_id, step_id, requested_by, reviewer_id, status, notes, created_at) VALUES ('REV-001', 'PRJ-001', 'STEP-001', 'USR-003', 'USR-002', 'approved', 'Scope confirmed with client', ?)",
		nowStr,
	); err != nil {
		return fmt.Errorf("seed reviews: %w", err)
	}

	return nil
}
