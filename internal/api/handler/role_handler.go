package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectpulse/project-system/internal/core/ports"
)

// RoleHandler exposes identity resolution and role administration.
type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type roleResponse struct {
	Role string `json:"role"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

type roleSyncResponse struct {
	Processed int                `json:"processed"`
	Failures  []batchFailureItem `json:"failures,omitempty"`
}

// CurrentRole handles GET /v1/me/role. The Identity middleware already
// created the user lazily, so this is a pure read of the resolved actor.
//
// @Summary      Get the caller's role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  roleResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me/role [get]
func (h *RoleHandler) CurrentRole(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleResponse{Role: string(actor.Role)})
}

// Dashboard handles GET /v1/dashboard/:namespace — tasks for the actor's own
// role namespace.
//
// @Summary      Read the caller's dashboard
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        namespace  path      string  true  "Dashboard namespace (must match the caller's role)"
// @Success      200        {array}   taskResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/dashboard/{namespace} [get]
func (h *RoleHandler) Dashboard(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.DashboardTasks(c.Request().Context(), actor, c.Param("namespace"))
	if err != nil {
		return err
	}

	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return c.JSON(http.StatusOK, out)
}

// SetRole handles PUT /v1/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Target user id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users/{id}/role [put]
func (h *RoleHandler) SetRole(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.service.SetRole(c.Request().Context(), actor, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	})
}

// SyncRoles handles POST /v1/users/role-sync. Always 200; per-user failures
// ride along in the body instead of failing the batch.
//
// @Summary      Propagate stored roles to the identity provider
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  roleSyncResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users/role-sync [post]
func (h *RoleHandler) SyncRoles(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.SyncExternalRoles(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleSyncResponse{
		Processed: result.Processed,
		Failures:  toBatchFailures(result.Failures),
	})
}
