package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	corereview "github.com/example/tpflow/internal/core/review"
	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// ReviewServiceImpl implements the ReviewService interface.
type ReviewServiceImpl struct {
	reviewRepo  secondary.ReviewRepository
	projectRepo secondary.ProjectRepository
	stepRepo    secondary.WorkflowStepRepository
	userRepo    secondary.UserRepository
}

// NewReviewService creates a new ReviewService with injected dependencies.
func NewReviewService(
	reviewRepo secondary.ReviewRepository,
	projectRepo secondary.ProjectRepository,
	stepRepo secondary.WorkflowStepRepository,
	userRepo secondary.UserRepository,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		projectRepo: projectRepo,
		stepRepo:    stepRepo,
		userRepo:    userRepo,
	}
}

// RequestReview opens a review on a project, optionally tied to a
// workflow step.
func (s *ReviewServiceImpl) RequestReview(ctx context.Context, req primary.RequestReviewRequest) (*primary.Review, error) {
	actor := ctxutil.ActorFromContext(ctx)
	if actor.ID == "" {
		return nil, Forbiddenf("review requests require an acting user")
	}

	if _, err := visibleProject(ctx, s.projectRepo, req.ProjectID); err != nil {
		return nil, err
	}

	// Validate optional step belongs to the project
	if req.StepID != "" {
		step, err := s.stepRepo.GetByID(ctx, req.StepID)
		if err != nil {
			return nil, err
		}
		if step.ProjectID != req.ProjectID {
			return nil, Validationf("step %s does not belong to project %s", req.StepID, req.ProjectID)
		}
	}

	reviewer, err := s.userRepo.GetByID(ctx, req.ReviewerID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to get reviewer: %w", err)
	}

	reviewCtx := corereview.RequestReviewContext{
		RequesterID:    actor.ID,
		ReviewerID:     req.ReviewerID,
		ReviewerExists: reviewer != nil,
	}
	if reviewer != nil {
		reviewCtx.ReviewerRole = reviewer.Role
	}
	if guard := corereview.CanRequestReview(reviewCtx); !guard.Allowed {
		return nil, Validationf("%s", guard.Reason)
	}

	record := &secondary.ReviewRecord{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		StepID:      req.StepID,
		RequestedBy: actor.ID,
		ReviewerID:  req.ReviewerID,
		Status:      string(corereview.StatusPending),
		Notes:       req.Notes,
	}

	if err := s.reviewRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	created, err := s.reviewRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created review: %w", err)
	}
	return s.recordToReview(created), nil
}

// GetReview retrieves a review by ID.
func (s *ReviewServiceImpl) GetReview(ctx context.Context, reviewID string) (*primary.Review, error) {
	record, err := s.getScoped(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return s.recordToReview(record), nil
}

// ListReviews lists reviews with optional filters.
func (s *ReviewServiceImpl) ListReviews(ctx context.Context, filters primary.ReviewFilters) ([]*primary.Review, error) {
	if filters.ProjectID != "" {
		if _, err := visibleProject(ctx, s.projectRepo, filters.ProjectID); err != nil {
			return nil, err
		}
	}

	records, err := s.reviewRepo.List(ctx, secondary.ReviewFilters{
		TenantID:   ctxutil.ActorFromContext(ctx).TenantID,
		ProjectID:  filters.ProjectID,
		ReviewerID: filters.ReviewerID,
		Status:     filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*primary.Review, len(records))
	for i, r := range records {
		reviews[i] = s.recordToReview(r)
	}
	return reviews, nil
}

// DecideReview records the reviewer's decision on a pending review.
func (s *ReviewServiceImpl) DecideReview(ctx context.Context, req primary.DecideReviewRequest) (*primary.Review, error) {
	if !corereview.ValidDecision(req.Decision) {
		return nil, Validationf("invalid decision %q (must be approved or changes_requested)", req.Decision)
	}

	record, err := s.getScoped(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	actor := ctxutil.ActorFromContext(ctx)
	decideCtx := corereview.DecideReviewContext{
		ReviewStatus: corereview.Status(record.Status),
		ReviewerID:   record.ReviewerID,
		ActorID:      actor.ID,
		ActorRole:    actor.Role,
	}

	if guard := corereview.IsDecider(decideCtx); !guard.Allowed {
		return nil, Forbiddenf("%s", guard.Reason)
	}
	if guard := corereview.CanDecideReview(decideCtx); !guard.Allowed {
		return nil, Validationf("%s", guard.Reason)
	}

	now := time.Now()
	record.Status = req.Decision
	record.DecidedAt = &now
	if req.Notes != "" {
		record.Notes = req.Notes
	}

	if err := s.reviewRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	decided, err := s.reviewRepo.GetByID(ctx, req.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch decided review: %w", err)
	}
	return s.recordToReview(decided), nil
}

// Helper methods

// getScoped loads a review and hides it from foreign tenants via the
// owning project.
func (s *ReviewServiceImpl) getScoped(ctx context.Context, reviewID string) (*secondary.ReviewRecord, error) {
	record, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, record.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owning project: %w", err)
	}
	if !inTenant(ctx, project.TenantID) {
		return nil, NotFoundf("review %s not found", reviewID)
	}
	return record, nil
}

func (s *ReviewServiceImpl) recordToReview(r *secondary.ReviewRecord) *primary.Review {
	return &primary.Review{
		ID:          r.ID,
		ProjectID:   r.ProjectID,
		StepID:      r.StepID,
		RequestedBy: r.RequestedBy,
		ReviewerID:  r.ReviewerID,
		Status:      r.Status,
		Notes:       r.Notes,
		DecidedAt:   r.DecidedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Ensure ReviewServiceImpl implements the interface
var _ primary.ReviewService = (*ReviewServiceImpl)(nil)
