package planner

import "task-planner/internal/model"

// InstanceKey addresses one occurrence of one task.
type InstanceKey struct {
	TaskID       string
	InstanceDate string
}

// ApplyOverrides merges per-occurrence overrides into expanded
// instances. A skip override removes the occurrence entirely; otherwise
// the override's non-nil fields win over the inherited ones. Fetching
// the override map is the caller's job; this stays free of I/O.
func ApplyOverrides(instances []TaskInstance, overrides map[InstanceKey]model.TaskOverride) []TaskInstance {
	if len(overrides) == 0 {
		return instances
	}
	merged := make([]TaskInstance, 0, len(instances))
	for _, inst := range instances {
		ov, ok := overrides[InstanceKey{TaskID: inst.ParentTaskID, InstanceDate: inst.InstanceDate}]
		if !ok {
			merged = append(merged, inst)
			continue
		}
		if ov.Skipped {
			continue
		}
		merged = append(merged, mergeOverride(inst, ov))
	}
	return merged
}

func mergeOverride(inst TaskInstance, ov model.TaskOverride) TaskInstance {
	if ov.Title != nil {
		inst.Title = *ov.Title
	}
	if ov.Description != nil {
		inst.Description = *ov.Description
	}
	if ov.Priority != nil {
		inst.Priority = *ov.Priority
	}
	if ov.StartDate != nil {
		inst.StartDate = *ov.StartDate
	}
	if ov.EndDate != nil {
		inst.EndDate = *ov.EndDate
	}
	if ov.StartTime != nil {
		inst.StartTime = *ov.StartTime
	}
	if ov.EndTime != nil {
		inst.EndTime = *ov.EndTime
	}
	if ov.IsSchedule != nil {
		inst.IsSchedule = *ov.IsSchedule
	}
	return inst
}
