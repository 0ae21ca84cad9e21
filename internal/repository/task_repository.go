package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-planner/internal/apperr"
	"task-planner/internal/model"
)

// TaskRepository handles CRUD for task definitions. Soft-deleted rows
// are invisible to every query except Restore and HardDelete.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given
// transaction handle.
func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{db: tx}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID uint, taskID string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("task %s: %w", taskID, apperr.ErrNotFound)
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

// ListLive returns every non-deleted task for the user, oldest first so
// expansion order follows creation order.
func (r *TaskRepository) ListLive(ctx context.Context, userID uint) ([]*model.Task, error) {
	var tasks []*model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// SoftDelete hides a task from normal queries while keeping the row
// recoverable via Restore.
func (r *TaskRepository) SoftDelete(ctx context.Context, userID uint, taskID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %s: %w", taskID, apperr.ErrNotFound)
	}
	return nil
}

// Restore clears the soft-delete marker.
func (r *TaskRepository) Restore(ctx context.Context, userID uint, taskID string) error {
	res := r.db.WithContext(ctx).Unscoped().Model(&model.Task{}).
		Where("user_id = ? AND id = ? AND deleted_at IS NOT NULL", userID, taskID).
		Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("restore task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %s: %w", taskID, apperr.ErrNotFound)
	}
	return nil
}

// HardDelete removes the row permanently, soft-deleted or not. Callers
// cascade overrides and completion records themselves.
func (r *TaskRepository) HardDelete(ctx context.Context, userID uint, taskID string) error {
	res := r.db.WithContext(ctx).Unscoped().Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("hard delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %s: %w", taskID, apperr.ErrNotFound)
	}
	return nil
}
