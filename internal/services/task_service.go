package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wisnuaw/tasklist-api/internal/models"
	"github.com/wisnuaw/tasklist-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
)

// TaskService handles task business logic. Every operation is scoped by
// the owning user's ID; tasks of other users are invisible and
// unaddressable.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasks returns all tasks owned by a user
func (s *TaskService) ListTasks(userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
}

// CreateTask validates the input and creates a new task for the user.
// Validation happens before any write, so a rejected input never
// partially creates a task.
func (s *TaskService) CreateTask(userID string, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Completed:   false,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		UserID:      userID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update. A nil field means
// "leave unchanged"; ClearDueDate distinguishes an explicit null due
// date from an absent one.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateTask applies only the supplied fields to a task owned by the
// user. Supplied fields are validated against the same rules as create
// before anything is written.
func (s *TaskService) UpdateTask(userID string, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	updates := map[string]interface{}{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
		updates["title"] = title
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Completed != nil {
		updates["completed"] = *input.Completed
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *input.Priority
	}
	if input.ClearDueDate {
		updates["due_date"] = nil
	} else if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}

	if len(updates) == 0 {
		task, err := s.taskRepo.FindByID(userID, taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
		return task, nil
	}

	task, err := s.taskRepo.Update(userID, taskID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task owned by the user. Deleting a task that
// does not exist under that owner is not an error.
func (s *TaskService) DeleteTask(userID string, taskID uint64) error {
	if _, err := s.taskRepo.Delete(userID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ToggleComplete flips the completion flag of a task owned by the user
func (s *TaskService) ToggleComplete(userID string, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.ToggleComplete(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}

	return task, nil
}

// MarkAllComplete marks every incomplete task owned by the user as complete
func (s *TaskService) MarkAllComplete(userID string) error {
	if _, err := s.taskRepo.MarkAllComplete(userID); err != nil {
		return fmt.Errorf("failed to mark tasks complete: %w", err)
	}
	return nil
}

// ClearCompleted deletes every completed task owned by the user
func (s *TaskService) ClearCompleted(userID string) error {
	if _, err := s.taskRepo.ClearCompleted(userID); err != nil {
		return fmt.Errorf("failed to clear completed tasks: %w", err)
	}
	return nil
}
