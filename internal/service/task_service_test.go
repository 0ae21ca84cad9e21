package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"task-planner/internal/apperr"
	"task-planner/internal/model"
)

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input TaskInput
	}{
		{"empty title", TaskInput{Title: "  "}},
		{"unknown section", TaskInput{Title: "x", Section: "tomorrow"}},
		{"unknown priority", TaskInput{Title: "x", Priority: "urgent"}},
		{"recurring without days", TaskInput{Title: "x", IsRecurring: true}},
		{"recurring today task", TaskInput{Title: "x", Section: model.SectionToday, IsRecurring: true, RecurringDays: []string{"monday"}}},
		{"unknown weekday", TaskInput{Title: "x", IsRecurring: true, RecurringDays: []string{"funday"}}},
		{"bad start date", TaskInput{Title: "x", StartDate: "04-03-2024"}},
		{"dates inverted", TaskInput{Title: "x", StartDate: "2024-03-10", EndDate: "2024-03-04"}},
		{"bad time", TaskInput{Title: "x", StartTime: "9am"}},
		{"times inverted", TaskInput{Title: "x", StartTime: "10:00", EndTime: "09:00"}},
		{"timetable without times", TaskInput{Title: "x", IsSchedule: true}},
	}
	for _, tc := range cases {
		if _, err := env.taskSvc.CreateTask(ctx, env.user, tc.input); !apperr.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateTaskIDHasNoUnderscore(t *testing.T) {
	env := newTestEnv(t)
	task := env.createTask(t, TaskInput{Title: "x"})
	if task.ID == "" || strings.Contains(task.ID, "_") {
		t.Fatalf("bad generated id %q", task.ID)
	}
}

func TestDailySectionDefaultsToEveryDay(t *testing.T) {
	env := newTestEnv(t)
	task := env.createTask(t, TaskInput{Title: "stretch", Section: model.SectionDaily})
	if !task.IsRecurring {
		t.Fatal("daily task must recur")
	}
	if len(task.RecurringDays) != 7 {
		t.Fatalf("expected all seven days, got %v", task.RecurringDays)
	}

	// An explicit narrowing is kept.
	narrowed := env.createTask(t, TaskInput{
		Title: "gym", Section: model.SectionDaily, RecurringDays: []string{"monday", "Thursday", "monday"},
	})
	if len(narrowed.RecurringDays) != 2 {
		t.Fatalf("expected deduped narrowed set, got %v", narrowed.RecurringDays)
	}
}

func TestUpsertOverrideValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	oneOff := env.createTask(t, TaskInput{Title: "one-off"})
	_, err := env.taskSvc.UpsertOverride(ctx, env.user, oneOff.ID, "2024-03-04", OverridePatch{Skipped: true})
	if !apperr.IsValidation(err) {
		t.Fatalf("override on non-recurring parent must fail validation, got %v", err)
	}

	recurring := env.createTask(t, TaskInput{
		Title: "standup", IsRecurring: true, RecurringDays: []string{"monday"},
	})
	stranger := env.otherUser(t)
	_, err = env.taskSvc.UpsertOverride(ctx, stranger, recurring.ID, "2024-03-04", OverridePatch{Skipped: true})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("foreign parent must read not found, got %v", err)
	}

	_, err = env.taskSvc.UpsertOverride(ctx, env.user, recurring.ID, "bad-date", OverridePatch{Skipped: true})
	if !apperr.IsValidation(err) {
		t.Fatalf("bad date must fail validation, got %v", err)
	}

	bad := "04.03.2024"
	_, err = env.taskSvc.UpsertOverride(ctx, env.user, recurring.ID, "2024-03-04", OverridePatch{StartDate: &bad})
	if !apperr.IsValidation(err) {
		t.Fatalf("malformed patched date must fail validation, got %v", err)
	}

	late, early := "2024-03-10", "2024-03-04"
	_, err = env.taskSvc.UpsertOverride(ctx, env.user, recurring.ID, "2024-03-04", OverridePatch{StartDate: &late, EndDate: &early})
	if !apperr.IsValidation(err) {
		t.Fatalf("inverted patched window must fail validation, got %v", err)
	}
}

func TestUpsertOverrideSingleRowPerKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := env.createTask(t, TaskInput{
		Title: "standup", IsRecurring: true, RecurringDays: []string{"monday"},
	})

	title1 := "first"
	if _, err := env.taskSvc.UpsertOverride(ctx, env.user, task.ID, "2024-03-04", OverridePatch{Title: &title1}); err != nil {
		t.Fatal(err)
	}
	title2 := "second"
	if _, err := env.taskSvc.UpsertOverride(ctx, env.user, task.ID, "2024-03-04", OverridePatch{Title: &title2}); err != nil {
		t.Fatal(err)
	}

	var rows []model.TaskOverride
	if err := env.db.Where("task_id = ?", task.ID).Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row per key, got %d", len(rows))
	}
	if rows[0].Title == nil || *rows[0].Title != "second" {
		t.Fatalf("second upsert did not win: %+v", rows[0])
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task := env.createTask(t, TaskInput{Title: "x"})
	if err := env.taskSvc.DeleteTask(ctx, env.user, task.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := env.taskSvc.GetTask(ctx, env.user, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("soft-deleted task must be invisible, got %v", err)
	}
	tasks, err := env.taskSvc.ListTasks(ctx, env.user)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Fatalf("soft-deleted task still listed: %d", len(tasks))
	}

	if err := env.taskSvc.RestoreTask(ctx, env.user, task.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, err := env.taskSvc.GetTask(ctx, env.user, task.ID); err != nil {
		t.Fatalf("restored task should be visible: %v", err)
	}
}

func TestPurgeTaskCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.completionSvc.SetClock(fixedClock("2024-03-04"))

	task := env.createTask(t, TaskInput{
		Title: "standup", IsRecurring: true, RecurringDays: []string{"monday"},
	})
	if _, err := env.taskSvc.UpsertOverride(ctx, env.user, task.ID, "2024-03-04", OverridePatch{Skipped: true}); err != nil {
		t.Fatal(err)
	}
	if err := env.completionSvc.Complete(ctx, env.user, task.ID, "2024-03-11"); err != nil {
		t.Fatal(err)
	}

	if err := env.taskSvc.PurgeTask(ctx, env.user, task.ID); err != nil {
		t.Fatalf("purge: %v", err)
	}

	if got := env.completionCount(t, task.ID); got != 0 {
		t.Fatalf("ledger not cascaded: %d", got)
	}
	var overrideCount int64
	env.db.Model(&model.TaskOverride{}).Where("task_id = ?", task.ID).Count(&overrideCount)
	if overrideCount != 0 {
		t.Fatalf("overrides not cascaded: %d", overrideCount)
	}
	if err := env.taskSvc.RestoreTask(ctx, env.user, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("purged task must be unrecoverable, got %v", err)
	}
}
