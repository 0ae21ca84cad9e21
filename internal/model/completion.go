package model

import "time"

// CompletionRecord is an append-only ledger entry marking one occurrence
// of a task as done. TaskID is always the original task id, never a
// synthesized instance id. The unique index closes the race between
// concurrent completions of the same occurrence at the storage layer.
type CompletionRecord struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	TaskID       string `gorm:"uniqueIndex:idx_completion_task_date"`
	InstanceDate string `gorm:"uniqueIndex:idx_completion_task_date"` // YYYY-MM-DD
	CompletedAt  time.Time
	CreatedAt    time.Time
}
