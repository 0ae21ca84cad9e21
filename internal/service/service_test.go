package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"task-planner/internal/model"
	"task-planner/internal/repository"
)

type testEnv struct {
	db            *gorm.DB
	user          *model.User
	taskSvc       *TaskService
	scheduleSvc   *ScheduleService
	completionSvc *CompletionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	// A file-backed db per test: sqlite ":memory:" is per-connection,
	// which the sql pool would silently multiply.
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	user := &model.User{TelegramID: 42, FirstName: "Test"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	return &testEnv{
		db:            db,
		user:          user,
		taskSvc:       NewTaskService(db, taskRepo, overrideRepo, completionRepo),
		scheduleSvc:   NewScheduleService(taskRepo, overrideRepo, completionRepo),
		completionSvc: NewCompletionService(db, taskRepo, completionRepo),
	}
}

// otherUser registers a second account for isolation tests.
func (e *testEnv) otherUser(t *testing.T) *model.User {
	t.Helper()
	user := &model.User{TelegramID: 43}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create second user: %v", err)
	}
	return user
}

func (e *testEnv) createTask(t *testing.T, input TaskInput) *model.Task {
	t.Helper()
	task, err := e.taskSvc.CreateTask(context.Background(), e.user, input)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func (e *testEnv) completionCount(t *testing.T, taskID string) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&model.CompletionRecord{}).Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		t.Fatalf("count completions: %v", err)
	}
	return count
}

// fixedClock pins the completion service's notion of "today".
func fixedClock(day string) func() time.Time {
	return func() time.Time {
		t, _ := time.ParseInLocation("2006-01-02", day, time.Local)
		return t.Add(12 * time.Hour)
	}
}
