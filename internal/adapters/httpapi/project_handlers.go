package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleCreateProject(c echo.Context) error {
	var req primary.CreateProjectRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	project, err := s.services.Projects.CreateProject(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) handleListProjects(c echo.Context) error {
	filters := primary.ProjectFilters{
		ClientID:        c.QueryParam("client_id"),
		Status:          c.QueryParam("status"),
		DeliverableType: c.QueryParam("deliverable_type"),
	}
	if raw := c.QueryParam("fiscal_year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return writeAPIError(c, http.StatusBadRequest, "validation_failed", "fiscal_year must be an integer")
		}
		filters.FiscalYear = year
	}

	projects, err := s.services.Projects.ListProjects(c.Request().Context(), filters)
	if err != nil {
		return s.writeError(c, err)
	}
	if projects == nil {
		projects = []*primary.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleGetProject(c echo.Context) error {
	project, err := s.services.Projects.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var req primary.UpdateProjectRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	req.ProjectID = c.Param("id")

	project, err := s.services.Projects.UpdateProject(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleSetProjectStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(c, &body); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	project, err := s.services.Projects.SetProjectStatus(c.Request().Context(), c.Param("id"), body.Status)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.services.Projects.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetActivity(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return writeAPIError(c, http.StatusBadRequest, "validation_failed", "limit must be a non-negative integer")
		}
		limit = n
	}

	entries, err := s.services.Projects.GetActivity(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return s.writeError(c, err)
	}
	if entries == nil {
		entries = []*primary.ActivityEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
