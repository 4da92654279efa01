// Package mcpapi exposes the workflow read and update operations as
// MCP tools over a stateless streamable-HTTP transport, so assistant
// clients can drive the same primary ports as the REST surface.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/example/tpflow/internal/app"
	"github.com/example/tpflow/internal/ports/primary"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds the MCP adapter. All three services are required;
// the transport itself carries no authentication and relies on the
// mounting HTTP server's middleware to resolve the actor.
func NewHandler(cfg Config, projects primary.ProjectService, workflow primary.WorkflowService, dashboard primary.DashboardService) (*Handler, error) {
	if projects == nil || workflow == nil || dashboard == nil {
		return nil, fmt.Errorf("project, workflow and dashboard services are required")
	}
	cfg = normalizeConfig(cfg)

	srv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerProjectTools(srv, projects)
	registerWorkflowTools(srv, workflow)
	registerDashboardTools(srv, dashboard)

	streamable := mcpserver.NewStreamableHTTPServer(
		srv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "tpflow"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// registerProjectTools registers the `list_projects` tool.
func registerProjectTools(srv *mcpserver.MCPServer, projects primary.ProjectService) {
	srv.AddTool(
		mcp.NewTool(
			"list_projects",
			mcp.WithDescription("List transfer pricing projects in the acting user's firm, with optional filters."),
			mcp.WithString("status", mcp.Description("Filter by project status"),
				mcp.Enum("planning", "analysis", "drafting", "internal_review", "finalization", "delivered", "on_hold", "cancelled")),
			mcp.WithString("client_id", mcp.Description("Filter by client identifier")),
			mcp.WithString("deliverable_type", mcp.Description("Filter by deliverable type"),
				mcp.Enum("local_file", "master_file", "benchmarking_study", "cbc_report")),
			mcp.WithNumber("fiscal_year", mcp.Description("Filter by fiscal year")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			rows, err := projects.ListProjects(ctx, primary.ProjectFilters{
				Status:          req.GetString("status", ""),
				ClientID:        req.GetString("client_id", ""),
				DeliverableType: req.GetString("deliverable_type", ""),
				FiscalYear:      req.GetInt("fiscal_year", 0),
			})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"projects": rows})
			if err != nil {
				return nil, fmt.Errorf("encode list_projects result: %w", err)
			}
			return result, nil
		},
	)
}

// registerWorkflowTools registers the workflow read/update tools.
func registerWorkflowTools(srv *mcpserver.MCPServer, workflow primary.WorkflowService) {
	srv.AddTool(
		mcp.NewTool(
			"get_project_workflow",
			mcp.WithDescription("Return a project's workflow steps, instantiating them from the template catalog on first access."),
			mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := req.RequireString("project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			steps, err := workflow.EnsureWorkflow(ctx, projectID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(map[string]any{"steps": steps})
			if err != nil {
				return nil, fmt.Errorf("encode get_project_workflow result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"update_workflow_step",
			mcp.WithDescription("Patch a workflow step. Completing a step requires every earlier step to be completed already."),
			mcp.WithString("step_id", mcp.Required(), mcp.Description("Workflow step identifier")),
			mcp.WithString("status", mcp.Description("New step status"),
				mcp.Enum("not_started", "in_progress", "completed", "blocked")),
			mcp.WithString("assigned_to", mcp.Description("User id to assign the step to")),
			mcp.WithNumber("completion_percentage", mcp.Description("Completion percentage, 0 to 100")),
			mcp.WithString("notes", mcp.Description("Free-form step notes")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			stepID, err := req.RequireString("step_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			var patch primary.StepPatch
			if v := req.GetString("status", ""); v != "" {
				patch.Status = &v
			}
			if v := req.GetString("assigned_to", ""); v != "" {
				patch.AssignedTo = &v
			}
			if v := req.GetInt("completion_percentage", -1); v >= 0 {
				patch.CompletionPercentage = &v
			}
			if v := req.GetString("notes", ""); v != "" {
				patch.Notes = &v
			}

			step, err := workflow.UpdateStep(ctx, stepID, patch)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(step)
			if err != nil {
				return nil, fmt.Errorf("encode update_workflow_step result: %w", err)
			}
			return result, nil
		},
	)

	srv.AddTool(
		mcp.NewTool(
			"get_project_progress",
			mcp.WithDescription("Return the computed progress summary for a project's workflow."),
			mcp.WithString("project_id", mcp.Required(), mcp.Description("Project identifier")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := req.RequireString("project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			progress, err := workflow.GetProgress(ctx, projectID)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(progress)
			if err != nil {
				return nil, fmt.Errorf("encode get_project_progress result: %w", err)
			}
			return result, nil
		},
	)
}

// registerDashboardTools registers the `get_dashboard_summary` tool.
func registerDashboardTools(srv *mcpserver.MCPServer, dashboard primary.DashboardService) {
	srv.AddTool(
		mcp.NewTool(
			"get_dashboard_summary",
			mcp.WithDescription("Return the firm-wide dashboard rollup: project counts, overdue steps, pending reviews and recent hours."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			summary, err := dashboard.GetSummary(ctx)
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(summary)
			if err != nil {
				return nil, fmt.Errorf("encode get_dashboard_summary result: %w", err)
			}
			return result, nil
		},
	)
}

// toolResultFromError translates application errors into coded tool
// error strings so assistant clients can branch without parsing prose.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, app.ErrNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	case errors.Is(err, app.ErrValidation):
		return mcp.NewToolResultError("validation_failed: " + err.Error())
	case errors.Is(err, app.ErrForbidden):
		return mcp.NewToolResultError("forbidden: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
