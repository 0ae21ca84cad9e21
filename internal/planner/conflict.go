package planner

import "task-planner/internal/dateutil"

// FindConflicts returns the ids of every instance on one day that
// overlaps at least one other. Intervals are half-open, so back-to-back
// occurrences (09:00-10:00 and 10:00-11:00) do not conflict. Instances
// without both times set cannot conflict and are ignored.
//
// Quadratic over one day's instances, which stays tiny.
func FindConflicts(instancesOnOneDay []TaskInstance) map[string]bool {
	type timed struct {
		id         string
		start, end int
	}
	var spans []timed
	for _, inst := range instancesOnOneDay {
		if inst.StartTime == "" || inst.EndTime == "" {
			continue
		}
		start, err := dateutil.ParseClock(inst.StartTime)
		if err != nil {
			continue
		}
		end, err := dateutil.ParseClock(inst.EndTime)
		if err != nil {
			continue
		}
		spans = append(spans, timed{id: inst.ID, start: start, end: end})
	}

	conflicts := make(map[string]bool)
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
				conflicts[spans[i].id] = true
				conflicts[spans[j].id] = true
			}
		}
	}
	return conflicts
}
