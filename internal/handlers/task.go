package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartworkplace/assistant-api/internal/dto"
	apierrors "github.com/smartworkplace/assistant-api/internal/errors"
	"github.com/smartworkplace/assistant-api/internal/middleware"
	"github.com/smartworkplace/assistant-api/internal/models"
	"github.com/smartworkplace/assistant-api/internal/services"
	"github.com/smartworkplace/assistant-api/internal/utils"
)

// TaskHandler coordinates task CRUD and analytics HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the current user's tasks, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns a specific task owned by the current user.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task for the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title          string     `json:"title" binding:"required"`
		Description    string     `json:"description"`
		Priority       *string    `json:"priority"`
		DueDate        *time.Time `json:"due_date"`
		EstimatedHours *float64   `json:"estimated_hours"`
		Tags           []string   `json:"tags"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		Tags:           models.TagList(req.Tags),
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.CreateTask(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	// Parse raw JSON to distinguish absent fields from explicit nulls
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	patch, err := patchFromRequest(raw)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(userID, taskID, patch)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask permanently removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// GetAnalytics returns the productivity snapshot for the current user.
func (h *TaskHandler) GetAnalytics(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	snapshot, err := h.taskService.GetAnalytics(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to compute analytics")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

// patchFromRequest converts the raw update body into a typed patch. Type and
// format problems are reported here; enum and range rules belong to the patch
// resolution in the service layer.
func patchFromRequest(raw map[string]any) (services.TaskPatch, error) {
	var patch services.TaskPatch

	if v, ok := raw["title"]; ok {
		s, ok := v.(string)
		if !ok {
			return patch, fmt.Errorf("title must be a string")
		}
		patch.Title = &s
	}
	if v, ok := raw["description"]; ok {
		s, ok := v.(string)
		if !ok {
			return patch, fmt.Errorf("description must be a string")
		}
		patch.Description = &s
	}
	if v, ok := raw["priority"]; ok {
		s, ok := v.(string)
		if !ok {
			return patch, fmt.Errorf("priority must be a string")
		}
		priority := models.TaskPriority(s)
		patch.Priority = &priority
	}
	if v, ok := raw["status"]; ok {
		s, ok := v.(string)
		if !ok {
			return patch, fmt.Errorf("status must be a string")
		}
		status := models.TaskStatus(s)
		patch.Status = &status
	}
	if v, ok := raw["due_date"]; ok {
		if v == nil {
			patch.ClearDueDate = true
		} else {
			s, ok := v.(string)
			if !ok {
				return patch, fmt.Errorf("due_date must be an RFC3339 timestamp or null")
			}
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return patch, fmt.Errorf("due_date must be an RFC3339 timestamp or null")
			}
			patch.DueDate = &parsed
		}
	}
	if v, ok := raw["estimated_hours"]; ok {
		f, ok := v.(float64)
		if !ok {
			return patch, fmt.Errorf("estimated_hours must be a number")
		}
		patch.EstimatedHours = &f
	}
	if v, ok := raw["actual_hours"]; ok {
		f, ok := v.(float64)
		if !ok {
			return patch, fmt.Errorf("actual_hours must be a number")
		}
		patch.ActualHours = &f
	}
	if v, ok := raw["tags"]; ok {
		items, ok := v.([]any)
		if !ok {
			return patch, fmt.Errorf("tags must be an array of strings")
		}
		tags := make(models.TagList, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return patch, fmt.Errorf("tags must be an array of strings")
			}
			tags = append(tags, s)
		}
		patch.Tags = &tags
	}

	return patch, nil
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrEmptyPatch),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidEstimatedHours),
		errors.Is(err, services.ErrInvalidActualHours):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
