package workflow

import "time"

// StatusTransitionResult contains the result of a step status
// transition. This is a value object that captures both the new status
// and any side effects (timestamp stamps and the forced completion
// percentage).
type StatusTransitionResult struct {
	NewStatus StepStatus
	// StartedAt is set when the step first enters in_progress and no
	// start date has been recorded yet.
	StartedAt *time.Time
	// CompletedAt is set when the step transitions to completed.
	CompletedAt *time.Time
	// CompletionPct is forced to 100 on completion.
	CompletionPct *int
	// ClearCompletedAt is set when an administrative correction moves
	// the step away from completed.
	ClearCompletedAt bool
}

// ApplyStatusTransition applies a status transition and returns the result.
// Pure function capturing the stamping rules:
// - Entering completed forces completion to 100% and stamps CompletedAt.
// - Entering in_progress stamps the start date if none was recorded.
// - Leaving completed (administrative correction) clears CompletedAt.
// The caller passes the current time to enable testing.
func ApplyStatusTransition(current, next StepStatus, hasStartDate bool, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{
		NewStatus: next,
	}

	switch next {
	case StatusCompleted:
		pct := 100
		result.CompletedAt = &now
		result.CompletionPct = &pct
	case StatusInProgress:
		if !hasStartDate {
			result.StartedAt = &now
		}
	}

	if current == StatusCompleted && next != StatusCompleted {
		result.ClearCompletedAt = true
	}

	return result
}
