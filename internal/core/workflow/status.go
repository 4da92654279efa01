// Package workflow contains the pure business logic for project
// workflow steps: status transitions, completion ordering guards and
// progress computation. This is part of the Functional Core - no I/O,
// only pure functions.
package workflow

// StepStatus represents the possible states of a workflow step.
type StepStatus string

const (
	StatusNotStarted StepStatus = "not_started"
	StatusInProgress StepStatus = "in_progress"
	StatusCompleted  StepStatus = "completed"
	StatusBlocked    StepStatus = "blocked"
)

// ValidStatus reports whether s is a recognized step status.
func ValidStatus(s string) bool {
	switch StepStatus(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// InitialStatus returns the status newly instantiated steps receive.
func InitialStatus() StepStatus {
	return StatusNotStarted
}
