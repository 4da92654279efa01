package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleCreateUser(c echo.Context) error {
	var req primary.CreateUserRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	user, err := s.services.Users.CreateUser(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) handleListUsers(c echo.Context) error {
	filters := primary.UserFilters{
		Role:       c.QueryParam("role"),
		ActiveOnly: c.QueryParam("active") == "true",
	}

	users, err := s.services.Users.ListUsers(c.Request().Context(), filters)
	if err != nil {
		return s.writeError(c, err)
	}
	if users == nil {
		users = []*primary.User{}
	}
	return c.JSON(http.StatusOK, users)
}
