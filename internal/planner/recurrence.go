package planner

import (
	"time"

	"task-planner/internal/dateutil"
	"task-planner/internal/model"
)

// ShouldOccur decides whether a recurring task produces an occurrence
// on the given date. Both the start/end window and the weekday filter
// apply; a single-day window still requires the weekday to match.
func ShouldOccur(task *model.Task, date time.Time) bool {
	if !task.IsRecurring || len(task.RecurringDays) == 0 {
		return false
	}
	day := dateutil.FormatDate(date)
	if task.StartDate != "" && day < task.StartDate {
		return false
	}
	if task.EndDate != "" && day > task.EndDate {
		return false
	}
	return task.RecursOn(dateutil.DayName(date))
}
