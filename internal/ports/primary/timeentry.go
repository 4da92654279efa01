package primary

import (
	"context"
	"time"
)

// TimeEntryService defines the primary port for time tracking.
type TimeEntryService interface {
	// LogTime records hours against a project for the acting user.
	LogTime(ctx context.Context, req LogTimeRequest) (*TimeEntry, error)

	// ListEntries lists a project's time entries with optional filters.
	ListEntries(ctx context.Context, filters TimeEntryFilters) ([]*TimeEntry, error)

	// DeleteEntry removes a time entry. Only the author or an admin
	// may delete.
	DeleteEntry(ctx context.Context, entryID string) error

	// GetTotals returns the hour rollup for a project.
	GetTotals(ctx context.Context, projectID string) (*TimeTotals, error)
}

// LogTimeRequest contains parameters for logging time.
type LogTimeRequest struct {
	ProjectID   string    `json:"-"`
	TaskID      string    `json:"task_id,omitempty"`
	EntryDate   time.Time `json:"entry_date"`
	Hours       float64   `json:"hours"`
	Billable    *bool     `json:"billable,omitempty"`
	Description string    `json:"description,omitempty"`
}

// TimeEntry represents a time entry at the port boundary.
type TimeEntry struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	TaskID      string    `json:"task_id,omitempty"`
	UserID      string    `json:"user_id"`
	EntryDate   time.Time `json:"entry_date"`
	Hours       float64   `json:"hours"`
	Billable    bool      `json:"billable"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TimeEntryFilters contains filter options for listing time entries.
type TimeEntryFilters struct {
	ProjectID string
	UserID    string
	From      *time.Time
	To        *time.Time
}

// TimeTotals is the hour rollup for a project.
type TimeTotals struct {
	ProjectID     string      `json:"project_id"`
	TotalHours    float64     `json:"total_hours"`
	BillableHours float64     `json:"billable_hours"`
	ByUser        []UserHours `json:"by_user"`
}

// UserHours is one user's share of a project's logged hours.
type UserHours struct {
	UserID   string  `json:"user_id"`
	UserName string  `json:"user_name"`
	Hours    float64 `json:"hours"`
}
