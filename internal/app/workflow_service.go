package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	coreproject "github.com/example/tpflow/internal/core/project"
	"github.com/example/tpflow/internal/core/workflow"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// WorkflowServiceImpl implements the WorkflowService interface: the
// template catalog, lazy step instantiation, the step state machine
// and progress reporting.
type WorkflowServiceImpl struct {
	templateRepo secondary.WorkflowTemplateRepository
	stepRepo     secondary.WorkflowStepRepository
	projectRepo  secondary.ProjectRepository
	userRepo     secondary.UserRepository
}

// NewWorkflowService creates a new WorkflowService with injected dependencies.
func NewWorkflowService(
	templateRepo secondary.WorkflowTemplateRepository,
	stepRepo secondary.WorkflowStepRepository,
	projectRepo secondary.ProjectRepository,
	userRepo secondary.UserRepository,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		templateRepo: templateRepo,
		stepRepo:     stepRepo,
		projectRepo:  projectRepo,
		userRepo:     userRepo,
	}
}

// ListTemplates lists catalog templates, optionally scoped to one
// deliverable type, ordered by ascending step sequence.
func (s *WorkflowServiceImpl) ListTemplates(ctx context.Context, deliverableType string) ([]*primary.WorkflowTemplate, error) {
	if deliverableType != "" && !coreproject.ValidDeliverableType(deliverableType) {
		return nil, Validationf("invalid deliverable type %q", deliverableType)
	}

	records, err := s.templateRepo.List(ctx, secondary.TemplateFilters{
		DeliverableType: deliverableType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]*primary.WorkflowTemplate, len(records))
	for i, r := range records {
		templates[i] = &primary.WorkflowTemplate{
			ID:              r.ID,
			DeliverableType: r.DeliverableType,
			StepSequence:    r.StepSequence,
			Name:            r.Name,
			Description:     r.Description,
			EstimatedDays:   r.EstimatedDays,
		}
	}
	return templates, nil
}

// EnsureWorkflow returns a project's workflow steps, instantiating
// them from the template catalog on first access. The unique
// (project_id, step_sequence) constraint absorbs concurrent first
// calls, so both callers see the same single set.
func (s *WorkflowServiceImpl) EnsureWorkflow(ctx context.Context, projectID string) ([]*primary.WorkflowStep, error) {
	project, err := visibleProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}

	steps, err := s.stepRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow steps: %w", err)
	}
	if len(steps) > 0 {
		return s.recordsToSteps(steps), nil
	}

	templates, err := s.templateRepo.ListByDeliverableType(ctx, project.DeliverableType)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if len(templates) == 0 {
		return nil, NotFoundf("no workflow templates for deliverable type %s", project.DeliverableType)
	}

	records := make([]*secondary.WorkflowStepRecord, len(templates))
	for i, t := range templates {
		records[i] = &secondary.WorkflowStepRecord{
			ID:           uuid.NewString(),
			ProjectID:    projectID,
			StepSequence: t.StepSequence,
			Name:         t.Name,
			Status:       string(workflow.InitialStatus()),
		}
	}

	if err := s.stepRepo.CreateBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to instantiate workflow: %w", err)
	}

	// Re-read: a concurrent instantiation may have won some rows.
	created, err := s.stepRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow steps: %w", err)
	}
	return s.recordsToSteps(created), nil
}

// UpdateStep applies a patch to a workflow step and reprojects the
// owning project's status when the step's status or completion
// percentage changed.
func (s *WorkflowServiceImpl) UpdateStep(ctx context.Context, stepID string, patch primary.StepPatch) (*primary.WorkflowStep, error) {
	if patch.Empty() {
		return nil, Validationf("no fields to update")
	}

	step, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, step.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owning project: %w", err)
	}
	if !inTenant(ctx, project.TenantID) {
		return nil, NotFoundf("workflow step %s not found", stepID)
	}

	// Validate patch fields
	if patch.Status != nil && !workflow.ValidStatus(*patch.Status) {
		return nil, Validationf("invalid step status %q", *patch.Status)
	}
	if patch.CompletionPercentage != nil && (*patch.CompletionPercentage < 0 || *patch.CompletionPercentage > 100) {
		return nil, Validationf("completion percentage must be between 0 and 100")
	}
	if patch.AssignedTo != nil && *patch.AssignedTo != "" {
		if _, err := s.userRepo.GetByID(ctx, *patch.AssignedTo); err != nil {
			return nil, Validationf("assignee %s not found", *patch.AssignedTo)
		}
	}

	// Completing a step requires every earlier step completed
	if patch.Status != nil && workflow.StepStatus(*patch.Status) == workflow.StatusCompleted {
		siblings, err := s.stepRepo.ListByProject(ctx, step.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to list workflow steps: %w", err)
		}
		prereqs := make([]workflow.PrerequisiteStep, 0, len(siblings))
		for _, sib := range siblings {
			if sib.ID == step.ID {
				continue
			}
			prereqs = append(prereqs, workflow.PrerequisiteStep{
				Sequence: sib.StepSequence,
				Name:     sib.Name,
				Status:   workflow.StepStatus(sib.Status),
			})
		}
		guard := workflow.CanCompleteStep(workflow.CompleteStepContext{
			StepName: step.Name,
			Sequence: step.StepSequence,
			Siblings: prereqs,
		})
		if !guard.Allowed {
			return nil, Validationf("%s", guard.Reason)
		}
	}

	statusChanged := false
	pctChanged := false

	if patch.AssignedTo != nil {
		step.AssignedTo = *patch.AssignedTo
	}
	if patch.Notes != nil {
		step.Notes = *patch.Notes
	}
	if patch.StartDate != nil {
		step.StartDate = patch.StartDate
	}
	if patch.DueDate != nil {
		step.DueDate = patch.DueDate
	}
	if patch.CompletionPercentage != nil && *patch.CompletionPercentage != step.CompletionPct {
		step.CompletionPct = *patch.CompletionPercentage
		pctChanged = true
	}

	// Status last: completion forces the percentage to 100 regardless
	// of what the patch carried.
	if patch.Status != nil && *patch.Status != step.Status {
		transition := workflow.ApplyStatusTransition(
			workflow.StepStatus(step.Status),
			workflow.StepStatus(*patch.Status),
			step.StartDate != nil,
			time.Now(),
		)
		step.Status = string(transition.NewStatus)
		if transition.StartedAt != nil {
			step.StartDate = transition.StartedAt
		}
		if transition.CompletedAt != nil {
			step.CompletedAt = transition.CompletedAt
		}
		if transition.CompletionPct != nil {
			step.CompletionPct = *transition.CompletionPct
		}
		if transition.ClearCompletedAt {
			step.CompletedAt = nil
		}
		statusChanged = true
	}

	if err := s.stepRepo.Update(ctx, step); err != nil {
		return nil, fmt.Errorf("failed to update workflow step: %w", err)
	}

	if statusChanged || pctChanged {
		if err := s.reprojectStatus(ctx, project); err != nil {
			return nil, err
		}
	}

	updated, err := s.stepRepo.GetByID(ctx, stepID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated step: %w", err)
	}
	return s.recordToStep(updated), nil
}

// GetProgress computes the progress summary for a project's workflow.
func (s *WorkflowServiceImpl) GetProgress(ctx context.Context, projectID string) (*primary.ProgressSummary, error) {
	if _, err := visibleProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	steps, err := s.stepRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow steps: %w", err)
	}
	if len(steps) == 0 {
		return nil, NotFoundf("project %s has no workflow steps", projectID)
	}

	schedules := make([]workflow.StepSchedule, len(steps))
	for i, st := range steps {
		schedules[i] = workflow.StepSchedule{
			Sequence:  st.StepSequence,
			Status:    workflow.StepStatus(st.Status),
			StartDate: st.StartDate,
			DueDate:   st.DueDate,
		}
	}

	summary := workflow.ComputeProgress(schedules, time.Now())

	return &primary.ProgressSummary{
		ProjectID:  projectID,
		TotalSteps: summary.TotalSteps,
		StatusCounts: primary.StepStatusCounts{
			NotStarted: summary.NotStartedCount,
			InProgress: summary.InProgressCount,
			Completed:  summary.CompletedCount,
			Blocked:    summary.BlockedCount,
		},
		PercentComplete:     summary.PercentComplete,
		IsOnTrack:           summary.IsOnTrack,
		EstimatedCompletion: summary.EstimatedCompletion,
	}, nil
}

// Helper methods

// reprojectStatus re-derives the owning project's status from the mean
// step completion. Manual statuses (on_hold, cancelled) are sticky and
// never overwritten here.
func (s *WorkflowServiceImpl) reprojectStatus(ctx context.Context, project *secondary.ProjectRecord) error {
	steps, err := s.stepRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("failed to list workflow steps: %w", err)
	}

	pcts := make([]int, len(steps))
	for i, st := range steps {
		pcts[i] = st.CompletionPct
	}

	next, changed := coreproject.Reproject(coreproject.Status(project.Status), coreproject.AverageCompletion(pcts))
	if !changed {
		return nil
	}

	if err := s.projectRepo.UpdateStatus(ctx, project.ID, string(next)); err != nil {
		return fmt.Errorf("failed to reproject project status: %w", err)
	}
	return nil
}

func (s *WorkflowServiceImpl) recordToStep(r *secondary.WorkflowStepRecord) *primary.WorkflowStep {
	return &primary.WorkflowStep{
		ID:                   r.ID,
		ProjectID:            r.ProjectID,
		StepSequence:         r.StepSequence,
		Name:                 r.Name,
		Status:               r.Status,
		AssignedTo:           r.AssignedTo,
		StartDate:            r.StartDate,
		DueDate:              r.DueDate,
		CompletedAt:          r.CompletedAt,
		CompletionPercentage: r.CompletionPct,
		Notes:                r.Notes,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func (s *WorkflowServiceImpl) recordsToSteps(records []*secondary.WorkflowStepRecord) []*primary.WorkflowStep {
	steps := make([]*primary.WorkflowStep, len(records))
	for i, r := range records {
		steps[i] = s.recordToStep(r)
	}
	return steps
}

// Ensure WorkflowServiceImpl implements the interface
var _ primary.WorkflowService = (*WorkflowServiceImpl)(nil)
