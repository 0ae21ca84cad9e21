package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-planner/internal/apperr"
	"task-planner/internal/dateutil"
	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// TaskInput carries the fields a user supplies when creating or
// updating a task definition.
type TaskInput struct {
	Title         string
	Description   string
	Section       string
	Priority      string
	StartDate     string
	EndDate       string
	StartTime     string
	EndTime       string
	IsRecurring   bool
	RecurringDays []string
	IsSchedule    bool
}

// OverridePatch is the sparse edit a user applies to one occurrence of
// a recurring task. Nil fields keep the inherited value.
type OverridePatch struct {
	Skipped     bool
	Title       *string
	Description *string
	Priority    *string
	StartDate   *string
	EndDate     *string
	StartTime   *string
	EndTime     *string
	IsSchedule  *bool
}

// TaskService wraps task CRUD and the per-occurrence override write
// path, enforcing the definition invariants.
type TaskService struct {
	db             *gorm.DB
	taskRepo       *repository.TaskRepository
	overrideRepo   *repository.OverrideRepository
	completionRepo *repository.CompletionRepository
	onChange       func()
}

func NewTaskService(db *gorm.DB, taskRepo *repository.TaskRepository, overrideRepo *repository.OverrideRepository, completionRepo *repository.CompletionRepository) *TaskService {
	return &TaskService{
		db:             db,
		taskRepo:       taskRepo,
		overrideRepo:   overrideRepo,
		completionRepo: completionRepo,
	}
}

// SetOnChange registers a callback fired after any mutation, so callers
// know when to re-query views. No caching happens here.
func (s *TaskService) SetOnChange(fn func()) {
	s.onChange = fn
}

func (s *TaskService) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	task := model.Task{
		ID:     uuid.NewString(),
		UserID: user.ID,
	}
	if err := applyInput(&task, input); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	s.notify()
	return &task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, user *model.User, taskID string, input TaskInput) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	if err := applyInput(task, input); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	s.notify()
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID string) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, user.ID, taskID)
}

func (s *TaskService) ListTasks(ctx context.Context, user *model.User) ([]*model.Task, error) {
	return s.taskRepo.ListLive(ctx, user.ID)
}

// DeleteTask soft-deletes the definition; occurrences disappear from
// every view but the row stays recoverable.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID string) error {
	if err := s.taskRepo.SoftDelete(ctx, user.ID, taskID); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *TaskService) RestoreTask(ctx context.Context, user *model.User, taskID string) error {
	if err := s.taskRepo.Restore(ctx, user.ID, taskID); err != nil {
		return err
	}
	s.notify()
	return nil
}

// PurgeTask removes the definition permanently, cascading its overrides
// and completion ledger in one transaction.
func (s *TaskService) PurgeTask(ctx context.Context, user *model.User, taskID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.overrideRepo.WithTx(tx).DeleteAllForTask(ctx, user.ID, taskID); err != nil {
			return err
		}
		if err := s.completionRepo.WithTx(tx).DeleteAllForTask(ctx, user.ID, taskID); err != nil {
			return err
		}
		return s.taskRepo.WithTx(tx).HardDelete(ctx, user.ID, taskID)
	})
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// UpsertOverride creates or updates the patch for one occurrence of a
// recurring task. Overrides against non-recurring parents are rejected;
// a parent owned by someone else reads as not found.
func (s *TaskService) UpsertOverride(ctx context.Context, user *model.User, taskID, instanceDate string, patch OverridePatch) (*model.TaskOverride, error) {
	if _, err := dateutil.ParseDate(instanceDate); err != nil {
		return nil, err
	}
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsRecurring {
		return nil, apperr.Validationf("task %s is not recurring, occurrences cannot be overridden", taskID)
	}
	if err := validateDatePtr(patch.StartDate); err != nil {
		return nil, err
	}
	if err := validateDatePtr(patch.EndDate); err != nil {
		return nil, err
	}
	if patch.StartDate != nil && patch.EndDate != nil && *patch.StartDate > *patch.EndDate {
		return nil, apperr.Validationf("start date %s is after end date %s", *patch.StartDate, *patch.EndDate)
	}
	if err := validateClockPtr(patch.StartTime); err != nil {
		return nil, err
	}
	if err := validateClockPtr(patch.EndTime); err != nil {
		return nil, err
	}

	ov := model.TaskOverride{
		UserID:       user.ID,
		TaskID:       task.ID,
		InstanceDate: instanceDate,
		Skipped:      patch.Skipped,
		Title:        patch.Title,
		Description:  patch.Description,
		Priority:     patch.Priority,
		StartDate:    patch.StartDate,
		EndDate:      patch.EndDate,
		StartTime:    patch.StartTime,
		EndTime:      patch.EndTime,
		IsSchedule:   patch.IsSchedule,
	}
	if err := s.overrideRepo.Upsert(ctx, &ov); err != nil {
		return nil, err
	}
	s.notify()
	return &ov, nil
}

// SkipOccurrence marks one occurrence of a recurring task as
// nonexistent, the "delete just this one" action.
func (s *TaskService) SkipOccurrence(ctx context.Context, user *model.User, taskID, instanceDate string) error {
	_, err := s.UpsertOverride(ctx, user, taskID, instanceDate, OverridePatch{Skipped: true})
	return err
}

// applyInput validates input and writes it onto task.
func applyInput(task *model.Task, input TaskInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return apperr.Validationf("title is required")
	}

	section := input.Section
	if section == "" {
		section = model.SectionNone
	}
	switch section {
	case model.SectionDaily, model.SectionToday, model.SectionUpcoming, model.SectionNone:
	default:
		return apperr.Validationf("unknown section %q", section)
	}

	switch input.Priority {
	case "", model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
	default:
		return apperr.Validationf("unknown priority %q", input.Priority)
	}

	if input.StartDate != "" {
		if _, err := dateutil.ParseDate(input.StartDate); err != nil {
			return err
		}
	}
	if input.EndDate != "" {
		if _, err := dateutil.ParseDate(input.EndDate); err != nil {
			return err
		}
	}
	if input.StartDate != "" && input.EndDate != "" && input.StartDate > input.EndDate {
		return apperr.Validationf("start date %s is after end date %s", input.StartDate, input.EndDate)
	}

	var startMin, endMin int
	var err error
	if input.StartTime != "" {
		if startMin, err = dateutil.ParseClock(input.StartTime); err != nil {
			return err
		}
	}
	if input.EndTime != "" {
		if endMin, err = dateutil.ParseClock(input.EndTime); err != nil {
			return err
		}
	}
	if input.StartTime != "" && input.EndTime != "" && startMin >= endMin {
		return apperr.Validationf("start time %s must be before end time %s", input.StartTime, input.EndTime)
	}

	recurring := input.IsRecurring
	days := input.RecurringDays
	if section == model.SectionDaily {
		// Daily tasks always recur; an empty set means every day.
		recurring = true
		if len(days) == 0 {
			days = dateutil.AllDayNames()
		}
	}
	if recurring {
		if section == model.SectionToday {
			return apperr.Validationf("today tasks cover a single day and cannot recur")
		}
		if len(days) == 0 {
			return apperr.Validationf("recurring task needs at least one weekday")
		}
		if days, err = normalizeDays(days); err != nil {
			return err
		}
	} else {
		days = nil
	}

	if input.IsSchedule && (input.StartTime == "" || input.EndTime == "") {
		return apperr.Validationf("timetable tasks need both start and end time")
	}

	// Generated ids are UUIDs, but guard anyway: an underscore in a
	// task id breaks instance-id parsing downstream.
	if strings.Contains(task.ID, "_") {
		return apperr.Validationf("task id must not contain underscores")
	}

	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	task.Section = section
	task.Priority = input.Priority
	task.StartDate = input.StartDate
	task.EndDate = input.EndDate
	task.StartTime = input.StartTime
	task.EndTime = input.EndTime
	task.IsRecurring = recurring
	task.RecurringDays = days
	task.IsSchedule = input.IsSchedule
	return nil
}

// normalizeDays lowercases, validates and dedupes weekday names,
// returning them in week order for stable storage.
func normalizeDays(days []string) ([]string, error) {
	seen := make(map[string]bool, len(days))
	for _, day := range days {
		name := strings.ToLower(strings.TrimSpace(day))
		if !dateutil.ValidDayName(name) {
			return nil, apperr.Validationf("unknown weekday %q", day)
		}
		seen[name] = true
	}
	order := dateutil.AllDayNames()
	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}
	normalized := make([]string, 0, len(seen))
	for name := range seen {
		normalized = append(normalized, name)
	}
	sort.Slice(normalized, func(i, j int) bool { return index[normalized[i]] < index[normalized[j]] })
	return normalized, nil
}

func validateClockPtr(s *string) error {
	if s == nil || *s == "" {
		return nil
	}
	_, err := dateutil.ParseClock(*s)
	return err
}

func validateDatePtr(s *string) error {
	if s == nil || *s == "" {
		return nil
	}
	_, err := dateutil.ParseDate(*s)
	return err
}
