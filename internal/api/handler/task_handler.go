package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/projectpulse/project-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task lifecycle operations. All error
// mapping happens in the central HTTP error handler; handlers just bind,
// validate and delegate.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a pending task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), actor, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		ProjectID:   req.ProjectID,
		TeamID:      req.TeamID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// List handles GET /v1/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        assignee_id  query     string  false  "Filter by assignee"
// @Param        creator_id   query     string  false  "Filter by creator"
// @Param        team_id      query     string  false  "Filter by team"
// @Param        status       query     string  false  "Filter by status"
// @Param        priority     query     string  false  "Filter by priority"
// @Param        page         query     int     false  "1-based page"
// @Param        limit        query     int     false  "Rows per page (max 100)"
// @Success      200          {object}  listTasksResponse
// @Failure      401          {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), actor, ports.ListTasksInput{
		AssigneeID: c.QueryParam("assignee_id"),
		CreatorID:  c.QueryParam("creator_id"),
		TeamID:     c.QueryParam("team_id"),
		Status:     c.QueryParam("status"),
		Priority:   c.QueryParam("priority"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Assign handles PATCH /v1/tasks/:id/assignment.
//
// @Summary      Assign a pending task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      assignTaskRequest  true  "Assignment details"
// @Success      200   {object}  taskResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/tasks/{id}/assignment [patch]
func (h *TaskHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.Assign(c.Request().Context(), actor, ports.AssignTaskInput{
		TaskID:     c.Param("id"),
		AssigneeID: req.AssigneeID,
		Deadline:   req.Deadline,
		Priority:   req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Accept handles POST /v1/tasks/:id/accept.
//
// @Summary      Accept an assigned task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/tasks/{id}/accept [post]
func (h *TaskHandler) Accept(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	task, err := h.service.Accept(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// SetProgress handles PATCH /v1/tasks/:id/progress.
//
// @Summary      Update task progress
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Task id"
// @Param        body  body      progressRequest  true  "Progress value (0-100)"
// @Success      200   {object}  taskResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tasks/{id}/progress [patch]
func (h *TaskHandler) SetProgress(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.SetProgress(c.Request().Context(), actor, c.Param("id"), *req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// SetStatus handles PUT /v1/tasks/:id/status.
//
// @Summary      Update task status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Task id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  taskResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/tasks/{id}/status [put]
func (h *TaskHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	task, err := h.service.SetStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Cleanup handles POST /v1/tasks/cleanup.
//
// @Summary      Reset tasks assigned to users that no longer exist
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cleanupResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/tasks/cleanup [post]
func (h *TaskHandler) Cleanup(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.Cleanup(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cleanupResponse{
		ResetTaskIDs: result.ResetTaskIDs,
		Failures:     toBatchFailures(result.Failures),
	})
}
