package repository

import (
	"github.com/wisnuaw/tasklist-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error
}

// TaskRepository defines the interface for task data access.
//
// Every method is scoped by the owning user's ID. A task that exists but
// belongs to another user behaves exactly like a task that does not
// exist, so callers never learn about other users' tasks.
type TaskRepository interface {
	// ListByOwner retrieves all tasks owned by a user, newest first
	ListByOwner(userID string) ([]models.Task, error)

	// FindByID finds a task owned by a user
	FindByID(userID string, taskID uint64) (*models.Task, error)

	// Create creates a new task
	Create(task *models.Task) error

	// Update applies the given column updates to a task owned by a user
	// in a single statement. Returns gorm.ErrRecordNotFound if no such
	// task exists under that owner.
	Update(userID string, taskID uint64, updates map[string]interface{}) (*models.Task, error)

	// Delete removes a task owned by a user. Reports whether a row was
	// actually deleted; deleting a missing task is not an error.
	Delete(userID string, taskID uint64) (bool, error)

	// ToggleComplete flips the completion flag of a task owned by a user
	// as a single atomic statement and returns the post-toggle task.
	ToggleComplete(userID string, taskID uint64) (*models.Task, error)

	// MarkAllComplete marks every incomplete task owned by a user as
	// complete. Returns the number of tasks affected.
	MarkAllComplete(userID string) (int64, error)

	// ClearCompleted deletes every completed task owned by a user.
	// Returns the number of tasks deleted.
	ClearCompleted(userID string) (int64, error)
}
