package primary

import (
	"context"
	"time"
)

// WorkflowService defines the primary port for the project workflow
// engine: the template catalog, lazy instantiation, the step state
// machine and progress reporting.
type WorkflowService interface {
	// ListTemplates lists catalog templates, optionally scoped to one
	// deliverable type, ordered by ascending step sequence.
	ListTemplates(ctx context.Context, deliverableType string) ([]*WorkflowTemplate, error)

	// EnsureWorkflow returns a project's workflow steps, instantiating
	// them from the template catalog on first access. Idempotent.
	EnsureWorkflow(ctx context.Context, projectID string) ([]*WorkflowStep, error)

	// UpdateStep applies a patch to a workflow step and reprojects the
	// owning project's status.
	UpdateStep(ctx context.Context, stepID string, patch StepPatch) (*WorkflowStep, error)

	// GetProgress computes the progress summary for a project's
	// workflow.
	GetProgress(ctx context.Context, projectID string) (*ProgressSummary, error)
}

// StepPatch enumerates exactly the step fields a caller may change.
// Nil fields are left untouched.
type StepPatch struct {
	Status               *string    `json:"status,omitempty"`
	AssignedTo           *string    `json:"assigned_to,omitempty"`
	CompletionPercentage *int       `json:"completion_percentage,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p StepPatch) Empty() bool {
	return p.Status == nil && p.AssignedTo == nil && p.CompletionPercentage == nil &&
		p.Notes == nil && p.StartDate == nil && p.DueDate == nil
}

// WorkflowTemplate represents a catalog template at the port boundary.
type WorkflowTemplate struct {
	ID              string `json:"id"`
	DeliverableType string `json:"deliverable_type"`
	StepSequence    int    `json:"step_sequence"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	EstimatedDays   int    `json:"estimated_days"`
}

// WorkflowStep represents a project workflow step at the port boundary.
type WorkflowStep struct {
	ID                   string     `json:"id"`
	ProjectID            string     `json:"project_id"`
	StepSequence         int        `json:"step_sequence"`
	Name                 string     `json:"name"`
	Status               string     `json:"status"`
	AssignedTo           string     `json:"assigned_to,omitempty"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	CompletionPercentage int        `json:"completion_percentage"`
	Notes                string     `json:"notes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// StepStatusCounts breaks a workflow down by step status.
type StepStatusCounts struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Blocked    int `json:"blocked"`
}

// ProgressSummary is the computed progress of a project's workflow.
type ProgressSummary struct {
	ProjectID           string           `json:"project_id"`
	TotalSteps          int              `json:"total_steps"`
	StatusCounts        StepStatusCounts `json:"status_counts"`
	PercentComplete     int              `json:"percent_complete"`
	IsOnTrack           bool             `json:"is_on_track"`
	EstimatedCompletion *time.Time       `json:"estimated_completion_date,omitempty"`
}
