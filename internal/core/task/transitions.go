// Package task contains the pure business logic for ad-hoc project
// tasks. No I/O, only pure functions.
package task

import "time"

// Status represents the possible states of a task.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority levels for tasks.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is a recognized task status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether s is a recognized priority.
func ValidPriority(s string) bool {
	return s == PriorityLow || s == PriorityMedium || s == PriorityHigh
}

// StatusTransitionResult contains the result of a task status
// transition.
type StatusTransitionResult struct {
	NewStatus Status
	// CompletedAt is set when transitioning to completed.
	CompletedAt *time.Time
	// ClearCompletedAt is set when reopening a completed task.
	ClearCompletedAt bool
}

// ApplyStatusTransition applies a status transition and returns the
// result. The caller passes the current time to enable testing.
func ApplyStatusTransition(current, next Status, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{
		NewStatus: next,
	}

	if next == StatusCompleted {
		result.CompletedAt = &now
	}

	if current == StatusCompleted && next != StatusCompleted {
		result.ClearCompletedAt = true
	}

	return result
}

// InitialStatus returns the status new tasks receive.
func InitialStatus() Status {
	return StatusOpen
}
