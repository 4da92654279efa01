package workflow

import (
	"math"
	"time"
)

// StepSchedule is the per-step input to progress computation: position,
// status and the optional schedule dates.
type StepSchedule struct {
	Sequence  int
	Status    StepStatus
	StartDate *time.Time
	DueDate   *time.Time
}

// Summary is the computed progress of a project's workflow.
type Summary struct {
	TotalSteps      int
	NotStartedCount int
	InProgressCount int
	CompletedCount  int
	BlockedCount    int
	// PercentComplete is the share of completed steps, rounded to the
	// nearest whole percent.
	PercentComplete int
	// IsOnTrack compares elapsed whole days against the planned
	// duration of the active step. True when no active step with a
	// full schedule exists.
	IsOnTrack bool
	// EstimatedCompletion is the active step's due date pushed out by
	// the planned durations of every later step. Nil when no active
	// step carries both schedule dates.
	EstimatedCompletion *time.Time
}

// ComputeProgress derives the workflow summary for a project's steps.
// The caller guarantees steps is non-empty; the active step is the
// lowest-sequence in_progress step.
func ComputeProgress(steps []StepSchedule, now time.Time) Summary {
	summary := Summary{
		TotalSteps: len(steps),
		IsOnTrack:  true,
	}

	for _, s := range steps {
		switch s.Status {
		case StatusNotStarted:
			summary.NotStartedCount++
		case StatusInProgress:
			summary.InProgressCount++
		case StatusCompleted:
			summary.CompletedCount++
		case StatusBlocked:
			summary.BlockedCount++
		}
	}

	if summary.TotalSteps > 0 {
		summary.PercentComplete = int(math.Round(float64(summary.CompletedCount) * 100 / float64(summary.TotalSteps)))
	}

	active := activeStep(steps)
	if active == nil || active.StartDate == nil || active.DueDate == nil {
		return summary
	}

	planned := plannedDays(*active.StartDate, *active.DueDate)
	elapsed := wholeDays(now.Sub(*active.StartDate))
	summary.IsOnTrack = elapsed <= planned

	remaining := 0
	for _, s := range steps {
		if s.Sequence <= active.Sequence || s.StartDate == nil || s.DueDate == nil {
			continue
		}
		remaining += plannedDays(*s.StartDate, *s.DueDate)
	}
	estimated := active.DueDate.AddDate(0, 0, remaining)
	summary.EstimatedCompletion = &estimated

	return summary
}

// activeStep returns the lowest-sequence in_progress step, or nil.
func activeStep(steps []StepSchedule) *StepSchedule {
	var active *StepSchedule
	for i := range steps {
		if steps[i].Status != StatusInProgress {
			continue
		}
		if active == nil || steps[i].Sequence < active.Sequence {
			active = &steps[i]
		}
	}
	return active
}

// plannedDays is the whole-day duration between start and due, floored
// at zero for inverted schedules.
func plannedDays(start, due time.Time) int {
	d := wholeDays(due.Sub(start))
	if d < 0 {
		return 0
	}
	return d
}

// wholeDays rounds a duration up to whole days.
func wholeDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}
