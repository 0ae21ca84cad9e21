package planner

import (
	"time"

	"task-planner/internal/dateutil"
	"task-planner/internal/model"
)

// Expand materializes every occurrence of the recurring tasks between
// startDate and endDate inclusive. Non-recurring tasks are skipped;
// callers union them as concrete instances.
//
// The result order is deterministic: date-major, then the order tasks
// were passed in. Instance ids double as idempotency keys downstream,
// so repeated calls with the same inputs yield identical output.
func Expand(tasks []*model.Task, startDate, endDate time.Time) []TaskInstance {
	var instances []TaskInstance
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		day := dateutil.FormatDate(d)
		for _, task := range tasks {
			if !task.IsRecurring {
				continue
			}
			if ShouldOccur(task, d) {
				instances = append(instances, NewInstance(task, day))
			}
		}
	}
	return instances
}
