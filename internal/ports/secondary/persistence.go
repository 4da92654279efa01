// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// UserRepository defines the secondary port for user persistence.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *UserRecord) error

	// GetByID retrieves a user by its ID.
	GetByID(ctx context.Context, id string) (*UserRecord, error)

	// GetByToken retrieves an active user by its API token.
	GetByToken(ctx context.Context, token string) (*UserRecord, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)

	// List retrieves users matching the given filters.
	List(ctx context.Context, filters UserFilters) ([]*UserRecord, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *UserRecord) error
}

// UserRecord represents a user as stored in persistence.
type UserRecord struct {
	ID        string
	TenantID  string
	Email     string
	Name      string
	Role      string
	APIToken  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserFilters contains filter options for querying users.
type UserFilters struct {
	TenantID   string
	Role       string
	ActiveOnly bool
}

// ClientRepository defines the secondary port for client persistence.
type ClientRepository interface {
	// Create persists a new client.
	Create(ctx context.Context, client *ClientRecord) error

	// GetByID retrieves a client by its ID.
	GetByID(ctx context.Context, id string) (*ClientRecord, error)

	// Update updates an existing client.
	Update(ctx context.Context, client *ClientRecord) error

	// Delete removes a client from persistence.
	Delete(ctx context.Context, id string) error

	// List retrieves clients matching the given filters.
	List(ctx context.Context, filters ClientFilters) ([]*ClientRecord, error)

	// CountProjects returns the number of projects for a client.
	CountProjects(ctx context.Context, clientID string) (int, error)
}

// ClientRecord represents a client as stored in persistence.
type ClientRecord struct {
	ID           string
	TenantID     string
	Name         string
	Industry     string
	Country      string
	ContactName  string
	ContactEmail string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClientFilters contains filter options for querying clients.
type ClientFilters struct {
	TenantID string
	Status   string
}

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// Update updates an existing project's editable fields.
	Update(ctx context.Context, project *ProjectRecord) error

	// UpdateStatus sets just the project status.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete removes a project; child rows cascade.
	Delete(ctx context.Context, id string) error

	// List retrieves projects matching the given filters.
	List(ctx context.Context, filters ProjectFilters) ([]*ProjectRecord, error)
}

// ProjectRecord represents a project as stored in persistence.
// ClientName is joined on reads for display and never written.
type ProjectRecord struct {
	ID              string
	TenantID        string
	ClientID        string
	ClientName      string
	Name            string
	Description     string
	DeliverableType string
	FiscalYear      int
	LeadID          string
	Status          string
	DueDate         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProjectFilters contains filter options for querying projects.
type ProjectFilters struct {
	TenantID        string
	ClientID        string
	Status          string
	DeliverableType string
	FiscalYear      int
}

// WorkflowTemplateRepository defines the secondary port for the
// seeded workflow step catalog. The catalog is read-only at runtime.
type WorkflowTemplateRepository interface {
	// ListByDeliverableType retrieves the templates for a deliverable
	// type ordered by ascending step sequence.
	ListByDeliverableType(ctx context.Context, deliverableType string) ([]*WorkflowTemplateRecord, error)

	// List retrieves templates matching the given filters, ordered by
	// deliverable type then step sequence.
	List(ctx context.Context, filters TemplateFilters) ([]*WorkflowTemplateRecord, error)
}

// WorkflowTemplateRecord represents a workflow template as stored in persistence.
type WorkflowTemplateRecord struct {
	ID              string
	DeliverableType string
	StepSequence    int
	Name            string
	Description     string
	EstimatedDays   int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TemplateFilters contains filter options for querying templates.
type TemplateFilters struct {
	DeliverableType string
}

// WorkflowStepRepository defines the secondary port for project
// workflow step persistence.
type WorkflowStepRepository interface {
	// CreateBatch persists a set of steps for a project in one
	// transaction. Rows that collide on (project_id, step_sequence)
	// are skipped, which makes concurrent first instantiation safe.
	CreateBatch(ctx context.Context, steps []*WorkflowStepRecord) error

	// GetByID retrieves a step by its ID.
	GetByID(ctx context.Context, id string) (*WorkflowStepRecord, error)

	// ListByProject retrieves a project's steps ordered by ascending
	// step sequence.
	ListByProject(ctx context.Context, projectID string) ([]*WorkflowStepRecord, error)

	// Update updates an existing step.
	Update(ctx context.Context, step *WorkflowStepRecord) error
}

// WorkflowStepRecord represents a project workflow step as stored in persistence.
type WorkflowStepRecord struct {
	ID            string
	ProjectID     string
	StepSequence  int
	Name          string
	Status        string
	AssignedTo    string
	StartDate     *time.Time
	DueDate       *time.Time
	CompletedAt   *time.Time
	CompletionPct int
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TaskRepository defines the secondary port for task persistence.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its ID.
	GetByID(ctx context.Context, id string) (*TaskRecord, error)

	// Update updates an existing task.
	Update(ctx context.Context, task *TaskRecord) error

	// Delete removes a task from persistence.
	Delete(ctx context.Context, id string) error

	// List retrieves tasks matching the given filters.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      string
	Priority    string
	AssignedTo  string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	ProjectID  string
	Status     string
	AssignedTo string
}

// TimeEntryRepository defines the secondary port for time entry persistence.
type TimeEntryRepository interface {
	// Create persists a new time entry.
	Create(ctx context.Context, entry *TimeEntryRecord) error

	// GetByID retrieves a time entry by its ID.
	GetByID(ctx context.Context, id string) (*TimeEntryRecord, error)

	// Delete removes a time entry from persistence.
	Delete(ctx context.Context, id string) error

	// List retrieves time entries matching the given filters.
	List(ctx context.Context, filters TimeEntryFilters) ([]*TimeEntryRecord, error)

	// Totals returns the hour rollup for a project.
	Totals(ctx context.Context, projectID string) (*TimeTotalsRecord, error)
}

// TimeEntryRecord represents a time entry as stored in persistence.
type TimeEntryRecord struct {
	ID          string
	ProjectID   string
	TaskID      string
	UserID      string
	EntryDate   time.Time
	Hours       float64
	Billable    bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimeEntryFilters contains filter options for querying time entries.
type TimeEntryFilters struct {
	ProjectID string
	UserID    string
	From      *time.Time
	To        *time.Time
}

// TimeTotalsRecord is the hour rollup for a project.
type TimeTotalsRecord struct {
	TotalHours    float64
	BillableHours float64
	ByUser        []UserHoursRecord
}

// UserHoursRecord is one user's share of a project's logged hours.
type UserHoursRecord struct {
	UserID   string
	UserName string
	Hours    float64
}

// ReviewRepository defines the secondary port for review persistence.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *ReviewRecord) error

	// GetByID retrieves a review by its ID.
	GetByID(ctx context.Context, id string) (*ReviewRecord, error)

	// Update updates an existing review.
	Update(ctx context.Context, review *ReviewRecord) error

	// List retrieves reviews matching the given filters.
	List(ctx context.Context, filters ReviewFilters) ([]*ReviewRecord, error)
}

// ReviewRecord represents a review as stored in persistence.
type ReviewRecord struct {
	ID          string
	ProjectID   string
	StepID      string
	RequestedBy string
	ReviewerID  string
	Status      string
	Notes       string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReviewFilters contains filter options for querying reviews.
// TenantID scopes through the owning project.
type ReviewFilters struct {
	TenantID   string
	ProjectID  string
	ReviewerID string
	Status     string
}

// DocumentRepository defines the secondary port for document metadata
// persistence. Blob contents live behind the BlobStore port.
type DocumentRepository interface {
	// Create persists a new document row.
	Create(ctx context.Context, doc *DocumentRecord) error

	// GetByID retrieves a document by its ID.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)

	// Delete removes a document row from persistence.
	Delete(ctx context.Context, id string) error

	// ListByProject retrieves a project's documents, newest first.
	ListByProject(ctx context.Context, projectID string) ([]*DocumentRecord, error)
}

// DocumentRecord represents document metadata as stored in persistence.
type DocumentRecord struct {
	ID          string
	ProjectID   string
	Name        string
	Category    string
	StorageKey  string
	SizeBytes   int64
	ContentType string
	UploadedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StatsRepository defines the secondary port for dashboard rollup queries.
type StatsRepository interface {
	// ProjectCountsByStatus returns project counts keyed by status.
	ProjectCountsByStatus(ctx context.Context, tenantID string) (map[string]int, error)

	// ActiveClientCount returns the number of active clients.
	ActiveClientCount(ctx context.Context, tenantID string) (int, error)

	// OverdueStepCount returns the number of steps past their due date
	// and not completed.
	OverdueStepCount(ctx context.Context, tenantID string, now time.Time) (int, error)

	// PendingReviewCount returns the number of pending reviews.
	PendingReviewCount(ctx context.Context, tenantID string) (int, error)

	// HoursLogged returns total and billable hours since the cutoff.
	HoursLogged(ctx context.Context, tenantID string, since time.Time) (total, billable float64, err error)

	// WorkloadByUser returns per-user open work counts.
	WorkloadByUser(ctx context.Context, tenantID string) ([]*WorkloadRecord, error)
}

// WorkloadRecord is one user's open work across a tenant.
type WorkloadRecord struct {
	UserID         string
	UserName       string
	OpenSteps      int
	OpenTasks      int
	PendingReviews int
}
