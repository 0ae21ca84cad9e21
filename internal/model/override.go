package model

import "time"

// TaskOverride is a sparse per-occurrence patch for a recurring task,
// keyed uniquely by (task, instance date). Nil fields leave the parent
// value untouched; Skipped marks the occurrence as nonexistent.
type TaskOverride struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	TaskID       string `gorm:"uniqueIndex:idx_override_task_date"`
	InstanceDate string `gorm:"uniqueIndex:idx_override_task_date"` // YYYY-MM-DD
	Skipped      bool   `gorm:"default:false"`
	Title        *string
	Description  *string
	Priority     *string
	StartDate    *string // YYYY-MM-DD
	EndDate      *string
	StartTime    *string
	EndTime      *string
	IsSchedule   *bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
