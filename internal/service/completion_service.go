package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"task-planner/internal/dateutil"
	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// CompletionService is the completion ledger. Each (task, instance
// date) pair is either incomplete (no record) or complete (exactly one
// record); both transitions are idempotent. The denormalized snapshot
// on the task row is rewritten in the same transaction that mutates the
// ledger, so the two can never drift apart.
type CompletionService struct {
	db             *gorm.DB
	taskRepo       *repository.TaskRepository
	completionRepo *repository.CompletionRepository
	now            func() time.Time
	onChange       func()
}

func NewCompletionService(db *gorm.DB, taskRepo *repository.TaskRepository, completionRepo *repository.CompletionRepository) *CompletionService {
	return &CompletionService{
		db:             db,
		taskRepo:       taskRepo,
		completionRepo: completionRepo,
		now:            time.Now,
	}
}

// SetOnChange registers a callback fired after any ledger mutation.
func (s *CompletionService) SetOnChange(fn func()) {
	s.onChange = fn
}

// SetClock overrides the time source, for tests.
func (s *CompletionService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *CompletionService) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Complete marks one occurrence done. Completing an already-complete
// occurrence is a no-op; the unique ledger index guarantees that even
// under concurrent calls.
func (s *CompletionService) Complete(ctx context.Context, user *model.User, taskID, instanceDate string) error {
	if _, err := dateutil.ParseDate(instanceDate); err != nil {
		return err
	}
	now := s.now()
	changed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := s.taskRepo.WithTx(tx)
		completions := s.completionRepo.WithTx(tx)

		task, err := tasks.FindByID(ctx, user.ID, taskID)
		if err != nil {
			return err
		}

		created, err := completions.Insert(ctx, &model.CompletionRecord{
			UserID:       user.ID,
			TaskID:       task.ID,
			InstanceDate: instanceDate,
			CompletedAt:  now,
		})
		if err != nil {
			return err
		}
		if !created {
			return nil
		}

		task.Completed = true
		task.CompletedAt = &now
		if task.Section == model.SectionDaily {
			if err := refreshDailySnapshot(ctx, completions, user.ID, task); err != nil {
				return err
			}
		}
		changed = true
		return tasks.Save(ctx, task)
	})
	if err != nil {
		return err
	}
	if changed {
		s.notify()
	}
	return nil
}

// Uncomplete reverts one occurrence. Uncompleting an incomplete
// occurrence is a no-op.
func (s *CompletionService) Uncomplete(ctx context.Context, user *model.User, taskID, instanceDate string) error {
	if _, err := dateutil.ParseDate(instanceDate); err != nil {
		return err
	}
	today := dateutil.FormatDate(s.now())
	changed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := s.taskRepo.WithTx(tx)
		completions := s.completionRepo.WithTx(tx)

		task, err := tasks.FindByID(ctx, user.ID, taskID)
		if err != nil {
			return err
		}

		deleted, err := completions.Delete(ctx, user.ID, task.ID, instanceDate)
		if err != nil {
			return err
		}
		if !deleted {
			return nil
		}

		doneToday, err := completions.Exists(ctx, user.ID, task.ID, today)
		if err != nil {
			return err
		}
		if !doneToday {
			task.Completed = false
			task.CompletedAt = nil
		}
		if task.Section == model.SectionDaily {
			if err := refreshDailySnapshot(ctx, completions, user.ID, task); err != nil {
				return err
			}
		}
		changed = true
		return tasks.Save(ctx, task)
	})
	if err != nil {
		return err
	}
	if changed {
		s.notify()
	}
	return nil
}

// refreshDailySnapshot recomputes the daily counters from the ledger
// rows, inside the caller's transaction. Reverting the latest record
// falls the last-completed date back to the next-latest one.
func refreshDailySnapshot(ctx context.Context, completions *repository.CompletionRepository, userID uint, task *model.Task) error {
	count, err := completions.CountForTask(ctx, userID, task.ID)
	if err != nil {
		return err
	}
	latest, err := completions.LatestDate(ctx, userID, task.ID)
	if err != nil {
		return err
	}
	task.CompletionCount = int(count)
	task.LastCompletedDate = latest
	return nil
}

// IsComplete reports whether an active record exists for the
// occurrence.
func (s *CompletionService) IsComplete(ctx context.Context, user *model.User, taskID, instanceDate string) (bool, error) {
	if _, err := dateutil.ParseDate(instanceDate); err != nil {
		return false, err
	}
	if _, err := s.taskRepo.FindByID(ctx, user.ID, taskID); err != nil {
		return false, err
	}
	return s.completionRepo.Exists(ctx, user.ID, taskID, instanceDate)
}

// DeleteAllForTask wipes the task's ledger and zeroes the denormalized
// snapshot.
func (s *CompletionService) DeleteAllForTask(ctx context.Context, user *model.User, taskID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := s.taskRepo.WithTx(tx)
		completions := s.completionRepo.WithTx(tx)

		task, err := tasks.FindByID(ctx, user.ID, taskID)
		if err != nil {
			return err
		}
		if err := completions.DeleteAllForTask(ctx, user.ID, task.ID); err != nil {
			return err
		}
		task.Completed = false
		task.CompletedAt = nil
		task.CompletionCount = 0
		task.LastCompletedDate = ""
		return tasks.Save(ctx, task)
	})
	if err != nil {
		return err
	}
	s.notify()
	return nil
}
