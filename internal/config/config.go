package config

import (
	"fmt"
	"os"
	"strings"

	"task-planner/internal/dateutil"
)

// Config keeps runtime settings for the planner bot.
type Config struct {
	TelegramToken string
	DatabaseURL   string
	SummaryTime   string // local HH:MM for the daily summary job
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SummaryTime:   strings.TrimSpace(os.Getenv("SUMMARY_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "task_planner.db"
	}

	if cfg.SummaryTime == "" {
		cfg.SummaryTime = "08:00"
	}
	if _, err := dateutil.ParseClock(cfg.SummaryTime); err != nil {
		return cfg, fmt.Errorf("SUMMARY_TIME: %w", err)
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}
