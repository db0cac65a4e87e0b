package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

// RBAC enforces coarse role gates on routes. Fine-grained ownership checks
// (assignee, team leader) live in the services behind domain.Authorize; this
// keeps obviously out-of-role callers away from the handlers. An actor that
// reached this point is authenticated, so a failed gate is 403, never 401.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get("actor").(ports.Actor)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[actor.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
