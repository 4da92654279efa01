package httpapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleUploadDocument(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", "multipart field \"file\" is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return s.writeError(c, fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	name := c.FormValue("name")
	if name == "" {
		name = fileHeader.Filename
	}

	req := primary.UploadDocumentRequest{
		ProjectID:   c.Param("id"),
		Name:        name,
		Category:    c.FormValue("category"),
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     src,
	}

	document, err := s.services.Documents.UploadDocument(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, document)
}

func (s *Server) handleListDocuments(c echo.Context) error {
	documents, err := s.services.Documents.ListDocuments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	if documents == nil {
		documents = []*primary.Document{}
	}
	return c.JSON(http.StatusOK, documents)
}

func (s *Server) handleDownloadDocument(c echo.Context) error {
	document, content, err := s.services.Documents.DownloadDocument(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	defer content.Close()

	contentType := document.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", document.Name))
	return c.Stream(http.StatusOK, contentType, content)
}

func (s *Server) handleDeleteDocument(c echo.Context) error {
	if err := s.services.Documents.DeleteDocument(c.Request().Context(), c.Param("id")); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
