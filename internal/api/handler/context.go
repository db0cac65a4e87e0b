package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectpulse/project-system/internal/core/ports"
)

// ctxActor extracts the actor resolved by the Identity middleware. Presence
// proves the whole auth chain ran; its absence on a protected route is a
// missing-authentication condition, not a forbidden one.
func ctxActor(c echo.Context) (ports.Actor, error) {
	actor, ok := c.Get("actor").(ports.Actor)
	if !ok || actor.ID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
