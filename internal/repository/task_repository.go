package repository

import (
	"time"

	"github.com/wisnuaw/tasklist-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ListByOwner retrieves all tasks owned by a user, newest first
func (r *GormTaskRepository) ListByOwner(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task owned by a user
func (r *GormTaskRepository) FindByID(userID string, taskID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// Update applies the given column updates to a task owned by a user.
// The owner filter is part of the UPDATE itself, so a task belonging to
// another user is simply never matched.
func (r *GormTaskRepository) Update(userID string, taskID uint64, updates map[string]interface{}) (*models.Task, error) {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		UpdateColumns(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(userID, taskID)
}

// Delete removes a task owned by a user
func (r *GormTaskRepository) Delete(userID string, taskID uint64) (bool, error) {
	result := r.db.
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ToggleComplete flips the completion flag in a single UPDATE so two
// concurrent toggles can never both apply against the same stale read.
func (r *GormTaskRepository) ToggleComplete(userID string, taskID uint64) (*models.Task, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		UpdateColumns(map[string]interface{}{
			"completed":  gorm.Expr("NOT completed"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(userID, taskID)
}

// MarkAllComplete marks every incomplete task owned by a user as
// complete. Already-complete tasks are not matched, so their
// updated_at is preserved.
func (r *GormTaskRepository) MarkAllComplete(userID string) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("user_id = ? AND completed = ?", userID, false).
		UpdateColumns(map[string]interface{}{
			"completed":  true,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// ClearCompleted deletes every completed task owned by a user
func (r *GormTaskRepository) ClearCompleted(userID string) (int64, error) {
	result := r.db.
		Where("user_id = ? AND completed = ?", userID, true).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
