package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/tpflow/internal/ports/primary"
)

// ProjectAdapter is a thin adapter that translates CLI operations to
// ProjectService and WorkflowService calls.
type ProjectAdapter struct {
	projects primary.ProjectService
	workflow primary.WorkflowService
	out      io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given services.
func NewProjectAdapter(projects primary.ProjectService, workflow primary.WorkflowService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		projects: projects,
		workflow: workflow,
		out:      out,
	}
}

// List lists projects with optional status and client filters.
func (a *ProjectAdapter) List(ctx context.Context, status, clientID string) error {
	projects, err := a.projects.ListProjects(ctx, primary.ProjectFilters{
		Status:   status,
		ClientID: clientID,
	})
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-38s %-12s %-22s %-6s %s\n", "ID", "STATUS", "TYPE", "FY", "NAME")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────────────────────────────────────────")
	for _, p := range projects {
		fmt.Fprintf(a.out, "%-38s %-12s %-22s %-6d %s\n", p.ID, p.Status, p.DeliverableType, p.FiscalYear, p.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single project, including its workflow
// steps.
func (a *ProjectAdapter) Show(ctx context.Context, projectID string) (*primary.Project, error) {
	project, err := a.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	fmt.Fprintf(a.out, "\nProject: %s\n", project.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", project.Name)
	fmt.Fprintf(a.out, "Status:  %s\n", project.Status)
	if project.ClientName != "" {
		fmt.Fprintf(a.out, "Client:  %s\n", project.ClientName)
	} else {
		fmt.Fprintf(a.out, "Client:  %s\n", project.ClientID)
	}
	fmt.Fprintf(a.out, "Type:    %s\n", project.DeliverableType)
	fmt.Fprintf(a.out, "Fiscal year: %d\n", project.FiscalYear)
	if project.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", project.Description)
	}
	if project.DueDate != nil {
		fmt.Fprintf(a.out, "Due:     %s\n", project.DueDate.Format("2006-01-02"))
	}

	steps, err := a.workflow.EnsureWorkflow(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}

	fmt.Fprintf(a.out, "\n%-4s %-12s %-5s %s\n", "SEQ", "STATUS", "PCT", "STEP")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range steps {
		fmt.Fprintf(a.out, "%-4d %-12s %4d%% %s\n", s.StepSequence, s.Status, s.CompletionPercentage, s.Name)
	}
	fmt.Fprintln(a.out)

	return project, nil
}

// Progress displays the computed progress summary for a project.
func (a *ProjectAdapter) Progress(ctx context.Context, projectID string) error {
	progress, err := a.workflow.GetProgress(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}

	fmt.Fprintf(a.out, "\nProject: %s\n", progress.ProjectID)
	fmt.Fprintf(a.out, "Steps:   %d total (%d completed, %d in progress, %d blocked, %d not started)\n",
		progress.TotalSteps,
		progress.StatusCounts.Completed,
		progress.StatusCounts.InProgress,
		progress.StatusCounts.Blocked,
		progress.StatusCounts.NotStarted,
	)
	fmt.Fprintf(a.out, "Complete: %d%%\n", progress.PercentComplete)
	if progress.IsOnTrack {
		fmt.Fprintln(a.out, "On track: yes")
	} else {
		fmt.Fprintln(a.out, "On track: no")
	}
	if progress.EstimatedCompletion != nil {
		fmt.Fprintf(a.out, "Estimated completion: %s\n", progress.EstimatedCompletion.Format("2006-01-02"))
	}
	fmt.Fprintln(a.out)

	return nil
}
