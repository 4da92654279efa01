package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/primary"
	"github.com/example/tpflow/internal/ports/secondary"
)

// DashboardServiceImpl implements the DashboardService interface.
type DashboardServiceImpl struct {
	statsRepo secondary.StatsRepository
}

// NewDashboardService creates a new DashboardService with injected dependencies.
func NewDashboardService(statsRepo secondary.StatsRepository) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		statsRepo: statsRepo,
	}
}

// GetSummary returns the tenant dashboard.
func (s *DashboardServiceImpl) GetSummary(ctx context.Context) (*primary.DashboardSummary, error) {
	tenantID := ctxutil.ActorFromContext(ctx).TenantID
	now := time.Now()

	byStatus, err := s.statsRepo.ProjectCountsByStatus(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	activeClients, err := s.statsRepo.ActiveClientCount(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active clients: %w", err)
	}

	overdueSteps, err := s.statsRepo.OverdueStepCount(ctx, tenantID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue steps: %w", err)
	}

	pendingReviews, err := s.statsRepo.PendingReviewCount(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reviews: %w", err)
	}

	total, billable, err := s.statsRepo.HoursLogged(ctx, tenantID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("failed to sum logged hours: %w", err)
	}

	return &primary.DashboardSummary{
		ProjectsByStatus:   byStatus,
		ActiveClients:      activeClients,
		OverdueSteps:       overdueSteps,
		PendingReviews:     pendingReviews,
		HoursLast30Days:    total,
		BillableLast30Days: billable,
	}, nil
}

// GetWorkload returns per-user open work counts.
func (s *DashboardServiceImpl) GetWorkload(ctx context.Context) ([]*primary.UserWorkload, error) {
	tenantID := ctxutil.ActorFromContext(ctx).TenantID

	records, err := s.statsRepo.WorkloadByUser(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute workload: %w", err)
	}

	workload := make([]*primary.UserWorkload, len(records))
	for i, r := range records {
		workload[i] = &primary.UserWorkload{
			UserID:         r.UserID,
			UserName:       r.UserName,
			OpenSteps:      r.OpenSteps,
			OpenTasks:      r.OpenTasks,
			PendingReviews: r.PendingReviews,
		}
	}
	return workload, nil
}

// Ensure DashboardServiceImpl implements the interface
var _ primary.DashboardService = (*DashboardServiceImpl)(nil)
