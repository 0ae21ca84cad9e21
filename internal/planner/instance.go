// Package planner holds the pure occurrence logic: expanding recurring
// tasks into dated instances, merging per-occurrence overrides and
// detecting timetable conflicts. Nothing in this package touches
// storage, so every function is testable with plain values.
package planner

import (
	"strings"

	"task-planner/internal/model"
)

// TaskInstance is the materialization of a task on one concrete date.
// Instances are built on demand for a query and never persisted. The
// parent id and date are carried as explicit fields; the concatenated
// ID exists only as a stable external-facing handle.
type TaskInstance struct {
	ID           string
	ParentTaskID string
	InstanceDate string // YYYY-MM-DD

	Title       string
	Description string
	Section     string
	Priority    string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	IsRecurring bool
	IsSchedule  bool

	Completed   bool
	HasConflict bool
}

// InstanceID synthesizes the external id for an occurrence. Task ids
// must never contain an underscore or SplitInstanceID misparses; task
// creation enforces that.
func InstanceID(parentTaskID, instanceDate string) string {
	return parentTaskID + "_" + instanceDate
}

// SplitInstanceID recovers (parent task id, instance date) from an
// external instance id by cutting at the first underscore.
func SplitInstanceID(id string) (parentTaskID, instanceDate string, ok bool) {
	return strings.Cut(id, "_")
}

// NewInstance builds the occurrence of task on the given date, copying
// the display fields from the definition. StartDate is overwritten to
// the instance date so single-day views render the occurrence, not the
// series window.
func NewInstance(task *model.Task, instanceDate string) TaskInstance {
	return TaskInstance{
		ID:           InstanceID(task.ID, instanceDate),
		ParentTaskID: task.ID,
		InstanceDate: instanceDate,
		Title:        task.Title,
		Description:  task.Description,
		Section:      task.Section,
		Priority:     task.Priority,
		StartDate:    instanceDate,
		EndDate:      task.EndDate,
		StartTime:    task.StartTime,
		EndTime:      task.EndTime,
		IsRecurring:  task.IsRecurring,
		IsSchedule:   task.IsSchedule,
	}
}

// ConcreteInstance wraps a non-recurring task as an already-concrete
// occurrence on its own date, so callers can union stored tasks with
// expanded ones in a single view.
func ConcreteInstance(task *model.Task, instanceDate string) TaskInstance {
	inst := NewInstance(task, instanceDate)
	inst.ID = task.ID
	inst.Completed = task.Completed
	return inst
}
