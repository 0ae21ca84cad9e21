package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"task-planner/internal/dateutil"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleDaily registers a daily job at the given HH:MM local time.
func (s *SchedulerService) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	minutes, err := dateutil.ParseClock(timeStr)
	if err != nil {
		return 0, err
	}
	// cron format: second minute hour dom month dow
	spec := fmt.Sprintf("0 %d %d * * *", minutes%60, minutes/60)
	return s.cron.AddFunc(spec, job)
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
