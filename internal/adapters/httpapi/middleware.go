package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/example/tpflow/internal/ctxutil"
)

// authenticate resolves the Authorization bearer token to an acting
// user and embeds it in the request context. The bootstrap token from
// config authenticates as an unscoped admin so the first tenant user
// can be created before any token exists in the database.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request())
		if !ok {
			return writeAPIError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		}

		if s.bootstrap.Token != "" && token == s.bootstrap.Token {
			actor := ctxutil.Actor{ID: "bootstrap", TenantID: s.bootstrap.TenantID, Role: "admin"}
			c.SetRequest(c.Request().WithContext(ctxutil.WithActor(c.Request().Context(), actor)))
			return next(c)
		}

		user, err := s.services.Users.Authenticate(c.Request().Context(), token)
		if err != nil {
			return writeAPIError(c, http.StatusUnauthorized, "unauthorized", "invalid bearer token")
		}

		actor := ctxutil.Actor{ID: user.ID, TenantID: user.TenantID, Role: user.Role}
		c.SetRequest(c.Request().WithContext(ctxutil.WithActor(c.Request().Context(), actor)))
		return next(c)
	}
}

// requireRole gates a route to the given roles. Runs after
// authenticate, so the actor is always present.
func (s *Server) requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ctxutil.ActorFromContext(c.Request().Context())
			for _, role := range roles {
				if actor.Role == role {
					return next(c)
				}
			}
			return writeAPIError(c, http.StatusForbidden, "forbidden", "insufficient role")
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
