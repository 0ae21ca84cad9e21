package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-planner/internal/apperr"
	"task-planner/internal/model"
	"task-planner/internal/planner"
)

// OverrideRepository stores per-occurrence patches for recurring tasks,
// one row per (task_id, instance_date).
type OverrideRepository struct {
	db *gorm.DB
}

func NewOverrideRepository(db *gorm.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

func (r *OverrideRepository) WithTx(tx *gorm.DB) *OverrideRepository {
	return &OverrideRepository{db: tx}
}

// Upsert creates or replaces the override for its composite key. The
// unique index makes concurrent upserts converge on one row.
func (r *OverrideRepository) Upsert(ctx context.Context, ov *model.TaskOverride) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "task_id"}, {Name: "instance_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"skipped", "title", "description", "priority",
			"start_date", "end_date", "start_time", "end_time",
			"is_schedule", "updated_at",
		}),
	}).Create(ov).Error
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

func (r *OverrideRepository) FindByKey(ctx context.Context, userID uint, taskID, instanceDate string) (*model.TaskOverride, error) {
	var ov model.TaskOverride
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ? AND instance_date = ?", userID, taskID, instanceDate).
		First(&ov).Error
	switch {
	case err == nil:
		return &ov, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("override %s/%s: %w", taskID, instanceDate, apperr.ErrNotFound)
	default:
		return nil, fmt.Errorf("find override: %w", err)
	}
}

// MapForRange loads every override for the user with an instance date
// inside [startDate, endDate], keyed the way ApplyOverrides expects.
func (r *OverrideRepository) MapForRange(ctx context.Context, userID uint, startDate, endDate string) (map[planner.InstanceKey]model.TaskOverride, error) {
	var rows []model.TaskOverride
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND instance_date >= ? AND instance_date <= ?", userID, startDate, endDate).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	overrides := make(map[planner.InstanceKey]model.TaskOverride, len(rows))
	for _, row := range rows {
		overrides[planner.InstanceKey{TaskID: row.TaskID, InstanceDate: row.InstanceDate}] = row
	}
	return overrides, nil
}

// DeleteAllForTask removes every override of one task, used when the
// task is hard-deleted.
func (r *OverrideRepository) DeleteAllForTask(ctx context.Context, userID uint, taskID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Delete(&model.TaskOverride{}).Error; err != nil {
		return fmt.Errorf("delete overrides: %w", err)
	}
	return nil
}
