package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleLogTime(c echo.Context) error {
	var req primary.LogTimeRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	req.ProjectID = c.Param("id")

	entry, err := s.services.Entries.LogTime(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleListTimeEntries(c echo.Context) error {
	filters := primary.TimeEntryFilters{
		ProjectID: c.Param("id"),
		UserID:    c.QueryParam("user_id"),
	}

	from, err := parseDateParam(c.QueryParam("from"))
	if err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	to, err := parseDateParam(c.QueryParam("to"))
	if err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	filters.From = from
	filters.To = to

	entries, err := s.services.Entries.ListEntries(c.Request().Context(), filters)
	if err != nil {
		return s.writeError(c, err)
	}
	if entries == nil {
		entries = []*primary.TimeEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleGetTimeSummary(c echo.Context) error {
	totals, err := s.services.Entries.GetTotals(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}

func (s *Server) handleDeleteTimeEntry(c echo.Context) error {
	if err := s.services.Entries.DeleteEntry(c.Request().Context(), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseDateParam accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want RFC3339 or YYYY-MM-DD)", value)
	}
	return &t, nil
}
