package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/app"
)

// maxBodyBytes bounds request bodies accepted by decodeBody.
const maxBodyBytes = 1 << 20

// APIError is the error body shape every non-2xx response carries.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps an APIError under the "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// writeError maps an application error onto its transport status and
// code. Unrecognized errors are logged and reported as internal.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return writeAPIError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, app.ErrValidation):
		return writeAPIError(c, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, app.ErrForbidden):
		return writeAPIError(c, http.StatusForbidden, "forbidden", err.Error())
	default:
		s.logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return writeAPIError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAPIError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorEnvelope{Error: APIError{Code: code, Message: message}})
}

// decodeBody strictly decodes a JSON request body into dst. Unknown
// fields, oversized bodies and trailing content are all rejected.
func decodeBody(c echo.Context, dst any) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBodyBytes)

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
