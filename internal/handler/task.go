package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/taskhive/backend/internal/model"
	"github.com/taskhive/backend/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
	log *logrus.Logger
}

func NewTaskHandler(svc *service.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// List godoc
// @Summary List the owner's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Owner ID"
// @Param completed query bool false "Filter by completion status"
// @Param limit query int false "Page size (1-1000, default 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} model.TaskListResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/{user_id}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	owner, ok := GetAuthSubject(c)
	if !ok {
		writeError(c, h.log, service.ErrTokenInvalid)
		return
	}

	completed, err := optionalBoolQuery(c, "completed")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	limit, err := intQuery(c, "limit", 100)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	tasks, total, err := h.svc.List(c.Request.Context(), owner, completed, limit, offset)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	responses := make([]model.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, model.NewTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, model.TaskListResponse{Tasks: responses, Total: total})
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Owner ID"
// @Param request body model.TaskCreateRequest true "Title and optional description"
// @Success 201 {object} model.TaskResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/{user_id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	owner, ok := GetAuthSubject(c)
	if !ok {
		writeError(c, h.log, service.ErrTokenInvalid)
		return
	}

	var req model.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	task, err := h.svc.Create(c.Request.Context(), owner, req.Title, req.Description)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewTaskResponse(task))
}

// Get godoc
// @Summary Get one task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Owner ID"
// @Param task_id path int true "Task ID"
// @Success 200 {object} model.TaskResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{user_id}/tasks/{task_id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	owner, taskID, ok := h.ownerAndTaskID(c)
	if !ok {
		return
	}

	task, err := h.svc.Get(c.Request.Context(), owner, taskID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.NewTaskResponse(task))
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Owner ID"
// @Param task_id path int true "Task ID"
// @Param request body model.TaskUpdateRequest true "Fields to update"
// @Success 200 {object} model.TaskResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{user_id}/tasks/{task_id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	owner, taskID, ok := h.ownerAndTaskID(c)
	if !ok {
		return
	}

	var req model.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	task, err := h.svc.Update(c.Request.Context(), owner, taskID, req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.NewTaskResponse(task))
}

// Delete godoc
// @Summary Delete a task permanently
// @Tags tasks
// @Security BearerAuth
// @Param user_id path string true "Owner ID"
// @Param task_id path int true "Task ID"
// @Success 204
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{user_id}/tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	owner, taskID, ok := h.ownerAndTaskID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), owner, taskID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetCompletion godoc
// @Summary Toggle or set task completion
// @Description Without a completed value the flag is flipped; with one it is set exactly. The value may come from the JSON body or the query string.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Owner ID"
// @Param task_id path int true "Task ID"
// @Param completed query bool false "Completion value; omit to toggle"
// @Param request body model.TaskCompletionRequest false "Completion value; omit to toggle"
// @Success 200 {object} model.TaskResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/{user_id}/tasks/{task_id}/complete [patch]
func (h *TaskHandler) SetCompletion(c *gin.Context) {
	owner, taskID, ok := h.ownerAndTaskID(c)
	if !ok {
		return
	}

	var completed *bool
	if c.Request.ContentLength > 0 {
		var req model.TaskCompletionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindingError(c, err)
			return
		}
		completed = req.Completed
	}
	if completed == nil {
		var err error
		completed, err = optionalBoolQuery(c, "completed")
		if err != nil {
			writeError(c, h.log, err)
			return
		}
	}

	task, err := h.svc.SetCompletion(c.Request.Context(), owner, taskID, completed)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.NewTaskResponse(task))
}

func (h *TaskHandler) ownerAndTaskID(c *gin.Context) (uuid.UUID, int64, bool) {
	owner, ok := GetAuthSubject(c)
	if !ok {
		writeError(c, h.log, service.ErrTokenInvalid)
		return uuid.Nil, 0, false
	}

	taskID, err := strconv.ParseInt(c.Param("task_id"), 10, 64)
	if err != nil {
		writeError(c, h.log, fmt.Errorf("%w: task id must be an integer", service.ErrInvalidInput))
		return uuid.Nil, 0, false
	}
	return owner, taskID, true
}

func optionalBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw, exists := c.GetQuery(name)
	if !exists {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a boolean", service.ErrInvalidInput, name)
	}
	return &value, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw, exists := c.GetQuery(name)
	if !exists {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidInput, name)
	}
	return value, nil
}
