package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wisnuaw/tasklist-api/internal/dto"
	apierrors "github.com/wisnuaw/tasklist-api/internal/errors"
	"github.com/wisnuaw/tasklist-api/internal/middleware"
	"github.com/wisnuaw/tasklist-api/internal/models"
	"github.com/wisnuaw/tasklist-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks owned by the current user.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task for the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Priority    models.TaskPriority `json:"priority"`
		DueDate     *time.Time          `json:"dueDate"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task owned by the current
// user. The raw body is inspected so that an explicitly null dueDate
// can be told apart from an absent one.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput

	if value, ok := raw["title"]; ok {
		title, ok := value.(string)
		if !ok {
			apierrors.BadRequest(c, "title must be a string")
			return
		}
		input.Title = &title
	}
	if value, ok := raw["description"]; ok {
		description, ok := value.(string)
		if !ok {
			apierrors.BadRequest(c, "description must be a string")
			return
		}
		input.Description = &description
	}
	if value, ok := raw["completed"]; ok {
		completed, ok := value.(bool)
		if !ok {
			apierrors.BadRequest(c, "completed must be a boolean")
			return
		}
		input.Completed = &completed
	}
	if value, ok := raw["priority"]; ok {
		priorityStr, ok := value.(string)
		if !ok {
			apierrors.BadRequest(c, "priority must be a string")
			return
		}
		priority := models.TaskPriority(priorityStr)
		input.Priority = &priority
	}
	if value, ok := raw["dueDate"]; ok {
		if value == nil {
			input.ClearDueDate = true
		} else {
			dueDateStr, ok := value.(string)
			if !ok {
				apierrors.BadRequest(c, "dueDate must be a RFC 3339 timestamp or null")
				return
			}
			dueDate, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "dueDate must be a RFC 3339 timestamp or null")
				return
			}
			input.DueDate = &dueDate
		}
	}

	task, err := h.taskService.UpdateTask(userID, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task owned by the current user. Deleting an
// already-deleted task responds 204 as well.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleTask flips the completion flag of a task owned by the current user.
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleComplete(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// MarkAllComplete marks every incomplete task of the current user as complete.
func (h *TaskHandler) MarkAllComplete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.taskService.MarkAllComplete(userID); err != nil {
		apierrors.InternalError(c, "Failed to mark tasks complete")
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearCompleted deletes every completed task of the current user.
func (h *TaskHandler) ClearCompleted(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.taskService.ClearCompleted(userID); err != nil {
		apierrors.InternalError(c, "Failed to clear completed tasks")
		return
	}

	c.Status(http.StatusNoContent)
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
