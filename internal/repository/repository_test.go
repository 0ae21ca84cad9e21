package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"task-planner/internal/apperr"
	"task-planner/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{TelegramID: 7}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedTask(t *testing.T, db *gorm.DB, userID uint, id string) *model.Task {
	t.Helper()
	task := &model.Task{ID: id, UserID: userID, Title: "seed " + id}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func TestCompletionUniqueConstraint(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedTask(t, db, user.ID, "t1")
	repo := NewCompletionRepository(db)
	ctx := context.Background()

	created, err := repo.Insert(ctx, &model.CompletionRecord{
		UserID: user.ID, TaskID: "t1", InstanceDate: "2024-03-04", CompletedAt: time.Now(),
	})
	if err != nil || !created {
		t.Fatalf("first insert: created=%v err=%v", created, err)
	}

	// The second insert hits the unique index and is ignored; this is
	// what closes the two-tabs race.
	created, err = repo.Insert(ctx, &model.CompletionRecord{
		UserID: user.ID, TaskID: "t1", InstanceDate: "2024-03-04", CompletedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("duplicate insert errored: %v", err)
	}
	if created {
		t.Fatal("duplicate insert reported created")
	}

	count, err := repo.CountForTask(ctx, user.ID, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestCompletionLatestDate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedTask(t, db, user.ID, "t1")
	repo := NewCompletionRepository(db)
	ctx := context.Background()

	latest, err := repo.LatestDate(ctx, user.ID, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if latest != "" {
		t.Fatalf("expected empty latest, got %q", latest)
	}

	for _, day := range []string{"2024-03-04", "2024-03-11", "2024-03-06"} {
		if _, err := repo.Insert(ctx, &model.CompletionRecord{
			UserID: user.ID, TaskID: "t1", InstanceDate: day, CompletedAt: time.Now(),
		}); err != nil {
			t.Fatal(err)
		}
	}

	latest, err = repo.LatestDate(ctx, user.ID, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if latest != "2024-03-11" {
		t.Fatalf("expected 2024-03-11, got %q", latest)
	}
}

func TestOverrideUpsertConverges(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedTask(t, db, user.ID, "t1")
	repo := NewOverrideRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &model.TaskOverride{
		UserID: user.ID, TaskID: "t1", InstanceDate: "2024-03-04", Skipped: true,
	}); err != nil {
		t.Fatal(err)
	}
	title := "moved"
	day := "2024-03-05"
	if err := repo.Upsert(ctx, &model.TaskOverride{
		UserID: user.ID, TaskID: "t1", InstanceDate: "2024-03-04", Title: &title, StartDate: &day,
	}); err != nil {
		t.Fatal(err)
	}

	ov, err := repo.FindByKey(ctx, user.ID, "t1", "2024-03-04")
	if err != nil {
		t.Fatal(err)
	}
	if ov.Skipped {
		t.Fatal("second upsert should have cleared the skip marker")
	}
	if ov.Title == nil || *ov.Title != "moved" {
		t.Fatalf("patch not stored: %+v", ov)
	}
	if ov.StartDate == nil || *ov.StartDate != "2024-03-05" {
		t.Fatalf("patched date not stored: %+v", ov)
	}

	var count int64
	db.Model(&model.TaskOverride{}).Where("task_id = ?", "t1").Count(&count)
	if count != 1 {
		t.Fatalf("expected one row per key, got %d", count)
	}
}

func TestOverrideFindByKeyScopedByUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	seedTask(t, db, user.ID, "t1")
	repo := NewOverrideRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &model.TaskOverride{
		UserID: user.ID, TaskID: "t1", InstanceDate: "2024-03-04", Skipped: true,
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.FindByKey(ctx, user.ID+1, "t1", "2024-03-04"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}
}

func TestTaskSoftDeleteVisibility(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	task := seedTask(t, db, user.ID, "t1")
	if err := repo.SoftDelete(ctx, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.FindByID(ctx, user.ID, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("soft-deleted row visible: %v", err)
	}
	live, err := repo.ListLive(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(live) != 0 {
		t.Fatalf("soft-deleted row listed: %d", len(live))
	}

	if err := repo.Restore(ctx, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByID(ctx, user.ID, task.ID); err != nil {
		t.Fatalf("restored row invisible: %v", err)
	}

	if err := repo.HardDelete(ctx, user.ID, task.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Restore(ctx, user.ID, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("hard-deleted row restorable: %v", err)
	}
}

func TestUserUpsertFromTelegram(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.UpsertFromTelegram(ctx, 99, "Ada", "", "ada")
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.UpsertFromTelegram(ctx, 99, "Ada", "Lovelace", "ada")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert created a second row: %d vs %d", first.ID, second.ID)
	}
	if second.LastName != "Lovelace" {
		t.Fatalf("profile not refreshed: %+v", second)
	}
}
