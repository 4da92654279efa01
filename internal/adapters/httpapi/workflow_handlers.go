package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

// handleGetWorkflow is the ensure-then-return read: first access
// instantiates the project's steps from the template catalog.
func (s *Server) handleGetWorkflow(c echo.Context) error {
	steps, err := s.services.Workflow.EnsureWorkflow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	if steps == nil {
		steps = []*primary.WorkflowStep{}
	}
	return c.JSON(http.StatusOK, steps)
}

func (s *Server) handleUpdateStep(c echo.Context) error {
	var patch primary.StepPatch
	if err := decodeBody(c, &patch); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	step, err := s.services.Workflow.UpdateStep(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, step)
}

func (s *Server) handleGetProgress(c echo.Context) error {
	progress, err := s.services.Workflow.GetProgress(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, progress)
}

func (s *Server) handleListTemplates(c echo.Context) error {
	templates, err := s.services.Workflow.ListTemplates(c.Request().Context(), c.QueryParam("deliverable_type"))
	if err != nil {
		return s.writeError(c, err)
	}
	if templates == nil {
		templates = []*primary.WorkflowTemplate{}
	}
	return c.JSON(http.StatusOK, templates)
}
