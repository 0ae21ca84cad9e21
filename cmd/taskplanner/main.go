package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-planner/internal/bot"
	"task-planner/internal/config"
	"task-planner/internal/repository"
	"task-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	overrideRepo := repository.NewOverrideRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	taskSvc := service.NewTaskService(db, taskRepo, overrideRepo, completionRepo)
	scheduleSvc := service.NewScheduleService(taskRepo, overrideRepo, completionRepo)
	completionSvc := service.NewCompletionService(db, taskRepo, completionRepo)
	reminderSvc := service.NewReminderService(scheduleSvc)

	telegramBot, err := bot.New(cfg.TelegramToken, userRepo, taskSvc, scheduleSvc, completionSvc, reminderSvc, &cfg)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleDaily(cfg.SummaryTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := telegramBot.SendDailySummaries(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("summary: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule summaries: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Task planner bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
