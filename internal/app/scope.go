package app

import (
	"context"

	"github.com/example/tpflow/internal/ctxutil"
	"github.com/example/tpflow/internal/ports/secondary"
)

// inTenant reports whether a record owned by tenantID is visible to
// the acting user. Calls without an actor (seeding, CLI maintenance)
// run unscoped and see everything.
func inTenant(ctx context.Context, tenantID string) bool {
	actor := ctxutil.ActorFromContext(ctx)
	return actor.TenantID == "" || actor.TenantID == tenantID
}

// visibleProject loads a project and hides it from foreign tenants.
// Cross-tenant reads report NotFound rather than Forbidden so that
// probing cannot confirm another tenant's ids exist.
func visibleProject(ctx context.Context, repo secondary.ProjectRepository, projectID string) (*secondary.ProjectRecord, error) {
	project, err := repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !inTenant(ctx, project.TenantID) {
		return nil, NotFoundf("project %s not found", projectID)
	}
	return project, nil
}
