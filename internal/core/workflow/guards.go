package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// PrerequisiteStep is the slice of sibling step state the completion
// guard needs: sequence position, display name and current status.
type PrerequisiteStep struct {
	Sequence int
	Name     string
	Status   StepStatus
}

// CompleteStepContext provides context for step completion guards.
type CompleteStepContext struct {
	StepName string
	Sequence int
	// Siblings are the other steps of the same project. Steps with a
	// sequence at or above the target are ignored.
	Siblings []PrerequisiteStep
}

// CanCompleteStep evaluates whether a step may transition to completed.
// Rules:
// - Every step with a strictly lower sequence must already be completed.
// The reason names each blocking step so callers can surface it.
func CanCompleteStep(ctx CompleteStepContext) GuardResult {
	var blocking []PrerequisiteStep
	for _, s := range ctx.Siblings {
		if s.Sequence < ctx.Sequence && s.Status != StatusCompleted {
			blocking = append(blocking, s)
		}
	}

	if len(blocking) == 0 {
		return GuardResult{Allowed: true}
	}

	sort.Slice(blocking, func(i, j int) bool { return blocking[i].Sequence < blocking[j].Sequence })
	names := make([]string, len(blocking))
	for i, s := range blocking {
		names[i] = s.Name
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("cannot complete step %q: earlier steps not completed: %s", ctx.StepName, strings.Join(names, ", ")),
	}
}
