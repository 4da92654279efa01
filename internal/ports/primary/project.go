package primary

import (
	"context"
	"time"
)

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a new project for a client.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// ListProjects lists projects with optional filters.
	ListProjects(ctx context.Context, filters ProjectFilters) ([]*Project, error)

	// UpdateProject updates a project's editable fields.
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*Project, error)

	// SetProjectStatus is the explicit status write path. It accepts
	// any valid status including the manual on_hold and cancelled.
	SetProjectStatus(ctx context.Context, projectID, status string) (*Project, error)

	// DeleteProject removes a project and all dependent rows.
	DeleteProject(ctx context.Context, projectID string) error

	// GetActivity retrieves the newest audit entries for a project.
	GetActivity(ctx context.Context, projectID string, limit int) ([]*ActivityEntry, error)
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	ClientID        string     `json:"client_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DeliverableType string     `json:"deliverable_type"`
	FiscalYear      int        `json:"fiscal_year"`
	LeadID          string     `json:"lead_id,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
}

// UpdateProjectRequest contains parameters for updating a project.
// Nil fields are left untouched.
type UpdateProjectRequest struct {
	ProjectID   string     `json:"-"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	LeadID      *string    `json:"lead_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Project represents a project entity at the port boundary.
type Project struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id"`
	ClientName      string     `json:"client_name,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DeliverableType string     `json:"deliverable_type"`
	FiscalYear      int        `json:"fiscal_year"`
	LeadID          string     `json:"lead_id,omitempty"`
	Status          string     `json:"status"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProjectFilters contains filter options for listing projects.
type ProjectFilters struct {
	ClientID        string
	Status          string
	DeliverableType string
	FiscalYear      int
}

// ActivityEntry represents one audit trail entry at the port boundary.
type ActivityEntry struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id,omitempty"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	FieldName  string    `json:"field_name,omitempty"`
	OldValue   string    `json:"old_value,omitempty"`
	NewValue   string    `json:"new_value,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
