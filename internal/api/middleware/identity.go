package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectpulse/project-system/internal/core/domain"
	"github.com/projectpulse/project-system/internal/core/ports"
)

// identityResolver is the subset of RoleService this middleware needs.
type identityResolver interface {
	Resolve(ctx context.Context, profile ports.Profile) (*domain.User, error)
}

// Identity resolves the verified external subject to the internal user
// record, creating it lazily with the default role client on first contact,
// and stores the actor in context. The stored role governs everything from
// here on; token claims beyond identity are ignored.
func Identity(resolver identityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			externalID, _ := c.Get("external_id").(string)
			if externalID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			name, _ := c.Get("claim_name").(string)
			email, _ := c.Get("claim_email").(string)

			user, err := resolver.Resolve(c.Request().Context(), ports.Profile{
				ExternalID: externalID,
				Name:       name,
				Email:      email,
			})
			if err != nil {
				return err
			}

			c.Set("actor", ports.Actor{ID: user.ID, Role: user.Role})
			c.Set("actor_user", user)

			return next(c)
		}
	}
}
