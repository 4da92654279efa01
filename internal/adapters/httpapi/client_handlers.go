package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleCreateClient(c echo.Context) error {
	var req primary.CreateClientRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	client, err := s.services.Clients.CreateClient(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, client)
}

func (s *Server) handleListClients(c echo.Context) error {
	filters := primary.ClientFilters{
		Status: c.QueryParam("status"),
	}

	clients, err := s.services.Clients.ListClients(c.Request().Context(), filters)
	if err != nil {
		return s.writeError(c, err)
	}
	if clients == nil {
		clients = []*primary.Client{}
	}
	return c.JSON(http.StatusOK, clients)
}

func (s *Server) handleGetClient(c echo.Context) error {
	client, err := s.services.Clients.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleUpdateClient(c echo.Context) error {
	var req primary.UpdateClientRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	req.ClientID = c.Param("id")

	client, err := s.services.Clients.UpdateClient(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

func (s *Server) handleDeleteClient(c echo.Context) error {
	if err := s.services.Clients.DeleteClient(c.Request().Context(), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
