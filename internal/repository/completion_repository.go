package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-planner/internal/model"
	"task-planner/internal/planner"
)

// CompletionRepository stores the append-only completion ledger. The
// unique index on (task_id, instance_date) plus insert-or-ignore keeps
// concurrent completes from ever producing two rows for one occurrence.
type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

func (r *CompletionRepository) WithTx(tx *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: tx}
}

// Insert adds a record unless one already exists for the same
// (task_id, instance_date). Returns false when the occurrence was
// already complete.
func (r *CompletionRepository) Insert(ctx context.Context, rec *model.CompletionRecord) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}, {Name: "instance_date"}},
		DoNothing: true,
	}).Create(rec)
	if res.Error != nil {
		return false, fmt.Errorf("insert completion: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the record for one occurrence. Returns false when none
// existed.
func (r *CompletionRepository) Delete(ctx context.Context, userID uint, taskID, instanceDate string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ? AND instance_date = ?", userID, taskID, instanceDate).
		Delete(&model.CompletionRecord{})
	if res.Error != nil {
		return false, fmt.Errorf("delete completion: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *CompletionRepository) Exists(ctx context.Context, userID uint, taskID, instanceDate string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.CompletionRecord{}).
		Where("user_id = ? AND task_id = ? AND instance_date = ?", userID, taskID, instanceDate).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}
	return count > 0, nil
}

func (r *CompletionRepository) CountForTask(ctx context.Context, userID uint, taskID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.CompletionRecord{}).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return count, nil
}

// LatestDate returns the most recent instance date with a record for
// the task, or "" when none exist.
func (r *CompletionRepository) LatestDate(ctx context.Context, userID uint, taskID string) (string, error) {
	var rec model.CompletionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Order("instance_date DESC").
		Limit(1).
		Find(&rec).Error
	if err != nil {
		return "", fmt.Errorf("latest completion: %w", err)
	}
	return rec.InstanceDate, nil
}

// SetForRange loads the completed occurrence keys for the user inside
// [startDate, endDate], for overlaying onto expanded instances.
func (r *CompletionRepository) SetForRange(ctx context.Context, userID uint, startDate, endDate string) (map[planner.InstanceKey]bool, error) {
	var rows []model.CompletionRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND instance_date >= ? AND instance_date <= ?", userID, startDate, endDate).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	done := make(map[planner.InstanceKey]bool, len(rows))
	for _, row := range rows {
		done[planner.InstanceKey{TaskID: row.TaskID, InstanceDate: row.InstanceDate}] = true
	}
	return done, nil
}

// DeleteAllForTask wipes the task's ledger, used on permanent deletion.
func (r *CompletionRepository) DeleteAllForTask(ctx context.Context, userID uint, taskID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Delete(&model.CompletionRecord{}).Error; err != nil {
		return fmt.Errorf("delete completions: %w", err)
	}
	return nil
}
