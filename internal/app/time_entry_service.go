package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// TimeEntryServiceImpl implements the TimeEntryService interface.
type TimeEntryServiceImpl struct {
	entryRepo   secondary.TimeEntryRepository
	projectRepo secondary.ProjectRepository
	taskRepo    secondary.TaskRepository
}

// NewTimeEntryService creates a new TimeEntryService with injected dependencies.
func NewTimeEntryService(
	entryRepo secondary.TimeEntryRepository,
	projectRepo secondary.ProjectRepository,
	taskRepo secondary.TaskRepository,
) *TimeEntryServiceImpl {
	return &TimeEntryServiceImpl{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// LogTime records hours against a project for the acting user.
func (s *TimeEntryServiceImpl) LogTime(ctx context.Context, req primary.LogTimeRequest) (*primary.TimeEntry, error) {
	actor := ctxutil.ActorFromContext(ctx)
	if actor.ID == "" {
		return nil, Forbiddenf("time entries require an acting user")
	}

	if req.Hours <= 0 || req.Hours > 24 {
		return nil, Validationf("hours must be greater than 0 and at most 24")
	}
	if req.EntryDate.IsZero() {
		return nil, Validationf("entry date is required")
	}

	if _, err := visibleProject(ctx, s.projectRepo, req.ProjectID); err != nil {
		return nil, err
	}

	// Validate optional task belongs to the same project
	if req.TaskID != "" {
		task, err := s.taskRepo.GetByID(ctx, req.TaskID)
		if err != nil {
			return nil, err
		}
		if task.ProjectID != req.ProjectID {
			return nil, Validationf("task %s does not belong to project %s", req.TaskID, req.ProjectID)
		}
	}

	billable := true
	if req.Billable != nil {
		billable = *req.Billable
	}

	record := &secondary.TimeEntryRecord{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		UserID:      actor.ID,
		EntryDate:   req.EntryDate,
		Hours:       req.Hours,
		Billable:    billable,
		Description: req.Description,
	}

	if err := s.entryRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	created, err := s.entryRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created time entry: %w", err)
	}
	return s.recordToEntry(created), nil
}

// ListEntries lists a project's time entries with optional filters.
func (s *TimeEntryServiceImpl) ListEntries(ctx context.Context, filters primary.TimeEntryFilters) ([]*primary.TimeEntry, error) {
	if filters.ProjectID != "" {
		if _, err := visibleProject(ctx, s.projectRepo, filters.ProjectID); err != nil {
			return nil, err
		}
	}

	records, err := s.entryRepo.List(ctx, secondary.TimeEntryFilters{
		ProjectID: filters.ProjectID,
		UserID:    filters.UserID,
		From:      filters.From,
		To:        filters.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	entries := make([]*primary.TimeEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToEntry(r)
	}
	return entries, nil
}

// DeleteEntry removes a time entry. Only the author or an admin may
// delete.
func (s *TimeEntryServiceImpl) DeleteEntry(ctx context.Context, entryID string) error {
	record, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(ctx, record.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to get owning project: %w", err)
	}
	if !inTenant(ctx, project.TenantID) {
		return NotFoundf("time entry %s not found", entryID)
	}

	actor := ctxutil.ActorFromContext(ctx)
	if actor.ID != "" && actor.ID != record.UserID && actor.Role != "admin" {
		return Forbiddenf("only the author or an admin can delete a time entry")
	}

	return s.entryRepo.Delete(ctx, entryID)
}

// GetTotals returns the hour rollup for a project.
func (s *TimeEntryServiceImpl) GetTotals(ctx context.Context, projectID string) (*primary.TimeTotals, error) {
	if _, err := visibleProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	totals, err := s.entryRepo.Totals(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute time totals: %w", err)
	}

	byUser := make([]primary.UserHours, len(totals.ByUser))
	for i, u := range totals.ByUser {
		byUser[i] = primary.UserHours{
			UserID:   u.UserID,
			UserName: u.UserName,
			Hours:    u.Hours,
		}
	}

	return &primary.TimeTotals{
		ProjectID:     projectID,
		TotalHours:    totals.TotalHours,
		BillableHours: totals.BillableHours,
		ByUser:        byUser,
	}, nil
}

// Helper methods

func (s *TimeEntryServiceImpl) recordToEntry(r *secondary.TimeEntryRecord) *primary.TimeEntry {
	return &primary.TimeEntry{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		TaskID:      r.TaskID,
		UserID:      r.UserID,
		EntryDate:   r.EntryDate,
		Hours:       r.Hours,
		Billable:    r.Billable,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure TimeEntryServiceImpl implements the interface
var _ primary.TimeEntryService = (*TimeEntryServiceImpl)(nil)
