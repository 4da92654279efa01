package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ports/primary"
)

func (s *Server) handleRequestReview(c echo.Context) error {
	var req primary.RequestReviewRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	req.ProjectID = c.Param("id")

	review, err := s.services.Reviews.RequestReview(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (s *Server) handleListProjectReviews(c echo.Context) error {
	filters := primary.ReviewFilters{
		ProjectID: c.Param("id"),
		Status:    c.QueryParam("status"),
	}
	return s.listReviews(c, filters)
}

func (s *Server) handleListReviews(c echo.Context) error {
	filters := primary.ReviewFilters{
		ReviewerID: c.QueryParam("reviewer_id"),
		Status:     c.QueryParam("status"),
	}
	return s.listReviews(c, filters)
}

func (s *Server) listReviews(c echo.Context, filters primary.ReviewFilters) error {
	reviews, err := s.services.Reviews.ListReviews(c.Request().Context(), filters)
	if err != nil {
		return s.writeError(c, err)
	}
	if reviews == nil {
		reviews = []*primary.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

func (s *Server) handleDecideReview(c echo.Context) error {
	var req primary.DecideReviewRequest
	if err := decodeBody(c, &req); err != nil {
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	}
	req.ReviewID = c.Param("id")

	review, err := s.services.Reviews.DecideReview(c.Request().Context(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}
