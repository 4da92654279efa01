package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleGetDashboardSummary(c echo.Context) error {
	summary, err := s.services.Dashboard.GetSummary(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *Server) handleGetDashboardWorkload(c echo.Context) error {
	workload, err := s.services.Dashboard.GetWorkload(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}
	if workload == nil {
		workload = []*primary.UserWorkload{}
	}
	return c.JSON(http.StatusOK, workload)
}
