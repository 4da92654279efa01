package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleCreateTask(c echo.Context) error {
	var req primary.CreateTaskRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	req.ProjectID = c.Param("id")

	task, err := s.services.Tasks.CreateTask(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleListTasks(c echo.Context) error {
	filters := primary.TaskFilters{
		ProjectID:  c.Param("id"),
		Status:     c.QueryParam("status"),
		AssignedTo: c.QueryParam("assigned_to"),
	}

	tasks, err := s.services.Tasks.ListTasks(c.Request().Context(), filters)
	if err != nil {
		return s.writeError(c, err)
	}
	if tasks == nil {
		tasks = []*primary.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c echo.Context) error {
	task, err := s.services.Tasks.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req primary.UpdateTaskRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	req.TaskID = c.Param("id")

	task, err := s.services.Tasks.UpdateTask(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleSetTaskStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(c, &body); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	task, err := s.services.Tasks.SetTaskStatus(c.Request().Context(), c.Param("id"), body.Status)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if err := s.services.Tasks.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
