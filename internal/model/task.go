package model

import (
	"time"

	"gorm.io/gorm"
)

// Task sections drive default scheduling behavior.
const (
	SectionDaily    = "daily"
	SectionToday    = "today"
	SectionUpcoming = "upcoming"
	SectionNone     = "none"
)

// Task priorities; empty string means unset.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is the persisted, canonical task definition. Recurring tasks are
// never stored per occurrence; occurrences are expanded on demand.
type Task struct {
	ID            string `gorm:"primaryKey"`
	UserID        uint   `gorm:"index"`
	Title         string
	Description   string
	Section       string `gorm:"default:none"`
	Priority      string
	StartDate     string // YYYY-MM-DD, empty when unset
	EndDate       string
	StartTime     string // HH:MM, empty when unset
	EndTime       string
	IsRecurring   bool     `gorm:"default:false"`
	RecurringDays []string `gorm:"serializer:json"`
	IsSchedule    bool     `gorm:"default:false"`

	// Denormalized completion snapshot; the completion ledger is the
	// source of truth and rewrites these transactionally.
	Completed         bool `gorm:"default:false"`
	CompletedAt       *time.Time
	CompletionCount   int `gorm:"default:0"`
	LastCompletedDate string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// RecursOn reports whether the given lowercase weekday name is in the
// task's recurrence set.
func (t *Task) RecursOn(day string) bool {
	for _, d := range t.RecurringDays {
		if d == day {
			return true
		}
	}
	return false
}
