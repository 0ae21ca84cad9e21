package service

import (
	"context"
	"sort"
	"time"

	"task-planner/internal/apperr"
	"task-planner/internal/dateutil"
	"task-planner/internal/model"
	"task-planner/internal/planner"
	"task-planner/internal/repository"
)

// ScheduleService composes the occurrence pipeline for calendar views:
// fetch live tasks, expand recurring ones over the range, union the
// concrete ones, merge overrides, overlay ledger completion state and
// tag per-day time conflicts. Every consumer of occurrences (bot views,
// reminders) goes through here, so the recurrence logic lives in
// exactly one place.
type ScheduleService struct {
	taskRepo       *repository.TaskRepository
	overrideRepo   *repository.OverrideRepository
	completionRepo *repository.CompletionRepository
}

func NewScheduleService(taskRepo *repository.TaskRepository, overrideRepo *repository.OverrideRepository, completionRepo *repository.CompletionRepository) *ScheduleService {
	return &ScheduleService{
		taskRepo:       taskRepo,
		overrideRepo:   overrideRepo,
		completionRepo: completionRepo,
	}
}

// DayView returns the merged occurrences for one date.
func (s *ScheduleService) DayView(ctx context.Context, user *model.User, date time.Time) ([]planner.TaskInstance, error) {
	return s.RangeView(ctx, user, date, date)
}

// WeekView returns the merged occurrences for the ISO week containing
// date, Monday through Sunday.
func (s *ScheduleService) WeekView(ctx context.Context, user *model.User, date time.Time) ([]planner.TaskInstance, error) {
	return s.RangeView(ctx, user, dateutil.WeekStart(date), dateutil.WeekEnd(date))
}

// MonthView returns the merged occurrences for a calendar month.
func (s *ScheduleService) MonthView(ctx context.Context, user *model.User, year int, month time.Month) ([]planner.TaskInstance, error) {
	first, last := dateutil.MonthBounds(year, month)
	return s.RangeView(ctx, user, first, last)
}

// RangeView runs the full pipeline over [startDate, endDate] inclusive.
func (s *ScheduleService) RangeView(ctx context.Context, user *model.User, startDate, endDate time.Time) ([]planner.TaskInstance, error) {
	if endDate.Before(startDate) {
		return nil, apperr.Validationf("range end %s is before start %s",
			dateutil.FormatDate(endDate), dateutil.FormatDate(startDate))
	}

	tasks, err := s.taskRepo.ListLive(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	startStr := dateutil.FormatDate(startDate)
	endStr := dateutil.FormatDate(endDate)

	instances := planner.Expand(tasks, startDate, endDate)
	for _, task := range tasks {
		if task.IsRecurring {
			continue
		}
		day := concreteDate(task)
		if day >= startStr && day <= endStr {
			instances = append(instances, planner.ConcreteInstance(task, day))
		}
	}
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].InstanceDate < instances[j].InstanceDate
	})

	overrides, err := s.overrideRepo.MapForRange(ctx, user.ID, startStr, endStr)
	if err != nil {
		return nil, err
	}
	instances = planner.ApplyOverrides(instances, overrides)

	done, err := s.completionRepo.SetForRange(ctx, user.ID, startStr, endStr)
	if err != nil {
		return nil, err
	}
	for i := range instances {
		key := planner.InstanceKey{TaskID: instances[i].ParentTaskID, InstanceDate: instances[i].InstanceDate}
		if done[key] {
			instances[i].Completed = true
		}
	}

	tagConflicts(instances)
	return instances, nil
}

// concreteDate picks the single date a non-recurring task falls on: its
// start date when set, otherwise the day it was created (today-section
// tasks live on their creation day).
func concreteDate(task *model.Task) string {
	if task.StartDate != "" {
		return task.StartDate
	}
	return dateutil.FormatDate(task.CreatedAt)
}

// tagConflicts marks every instance overlapping another on the same
// day. Instances arrive date-sorted, so days are contiguous runs.
func tagConflicts(instances []planner.TaskInstance) {
	for start := 0; start < len(instances); {
		end := start
		for end < len(instances) && instances[end].InstanceDate == instances[start].InstanceDate {
			end++
		}
		conflicts := planner.FindConflicts(instances[start:end])
		for i := start; i < end; i++ {
			if conflicts[instances[i].ID] {
				instances[i].HasConflict = true
			}
		}
		start = end
	}
}
