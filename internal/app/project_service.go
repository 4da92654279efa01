package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	coreproject "github.com/example/tpflow/internal/core/project"
	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo  secondary.ProjectRepository
	clientRepo   secondary.ClientRepository
	userRepo     secondary.UserRepository
	activityRepo secondary.ActivityLogRepository
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(
	projectRepo secondary.ProjectRepository,
	clientRepo secondary.ClientRepository,
	userRepo secondary.UserRepository,
	activityRepo secondary.ActivityLogRepository,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
	}
}

// CreateProject creates a new project for a client.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, Validationf("project name is required")
	}
	if !coreproject.ValidDeliverableType(req.DeliverableType) {
		return nil, Validationf("invalid deliverable type %q", req.DeliverableType)
	}
	if req.FiscalYear <= 0 {
		return nil, Validationf("fiscal year is required")
	}

	// Validate client exists in the actor's tenant
	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !inTenant(ctx, client.TenantID) {
		return nil, NotFoundf("client %s not found", req.ClientID)
	}

	// Validate optional lead exists
	if req.LeadID != "" {
		if _, err := s.userRepo.GetByID(ctx, req.LeadID); err != nil {
			return nil, Validationf("lead user %s not found", req.LeadID)
		}
	}

	record := &secondary.ProjectRecord{
		ID:              uuid.NewString(),
		TenantID:        client.TenantID,
		ClientID:        req.ClientID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DeliverableType: req.DeliverableType,
		FiscalYear:      req.FiscalYear,
		LeadID:          req.LeadID,
		Status:          string(coreproject.InitialStatus()),
		DueDate:         req.DueDate,
	}

	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	created, err := s.projectRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created project: %w", err)
	}
	return s.recordToProject(created), nil
}

// GetProject retrieves a project by ID.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := visibleProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	return s.recordToProject(record), nil
}

// ListProjects lists projects with optional filters.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, filters primary.ProjectFilters) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx, secondary.ProjectFilters{
		TenantID:        ctxutil.ActorFromContext(ctx).TenantID,
		ClientID:        filters.ClientID,
		Status:          filters.Status,
		DeliverableType: filters.DeliverableType,
		FiscalYear:      filters.FiscalYear,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = s.recordToProject(r)
	}
	return projects, nil
}

// UpdateProject updates a project's editable fields. Status changes go
// through SetProjectStatus or the workflow projector, never here.
func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, req primary.UpdateProjectRequest) (*primary.Project, error) {
	record, err := visibleProject(ctx, s.projectRepo, req.ProjectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, Validationf("project name cannot be empty")
		}
		record.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.LeadID != nil {
		if *req.LeadID != "" {
			if _, err := s.userRepo.GetByID(ctx, *req.LeadID); err != nil {
				return nil, Validationf("lead user %s not found", *req.LeadID)
			}
		}
		record.LeadID = *req.LeadID
	}
	if req.DueDate != nil {
		record.DueDate = req.DueDate
	}

	if err := s.projectRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	updated, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated project: %w", err)
	}
	return s.recordToProject(updated), nil
}

// SetProjectStatus is the explicit status write path. It accepts any
// valid status including the manual on_hold and cancelled, which the
// workflow projector then treats as sticky.
func (s *ProjectServiceImpl) SetProjectStatus(ctx context.Context, projectID, status string) (*primary.Project, error) {
	if !coreproject.ValidStatus(status) {
		return nil, Validationf("invalid project status %q", status)
	}

	if _, err := visibleProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateStatus(ctx, projectID, status); err != nil {
		return nil, fmt.Errorf("failed to set project status: %w", err)
	}

	updated, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated project: %w", err)
	}
	return s.recordToProject(updated), nil
}

// DeleteProject removes a project and all dependent rows.
func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, projectID string) error {
	if _, err := visibleProject(ctx, s.projectRepo, projectID); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// GetActivity retrieves the newest audit entries for a project.
func (s *ProjectServiceImpl) GetActivity(ctx context.Context, projectID string, limit int) ([]*primary.ActivityEntry, error) {
	if _, err := visibleProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	records, err := s.activityRepo.ListForProject(ctx, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	entries := make([]*primary.ActivityEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.ActivityEntry{
			ID:         r.ID,
			ActorID:    r.ActorID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			FieldName:  r.FieldName,
			OldValue:   r.OldValue,
			NewValue:   r.NewValue,
			CreatedAt:  r.CreatedAt,
		}
	}
	return entries, nil
}

// Helper methods

func (s *ProjectServiceImpl) recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:              r.ID,
		ClientID:        r.ClientID,
		ClientName:      r.ClientName,
		Name:            r.Name,
		Description:     r.Description,
		DeliverableType: r.DeliverableType,
		FiscalYear:      r.FiscalYear,
		LeadID:          r.LeadID,
		Status:          r.Status,
		DueDate:         r.DueDate,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
