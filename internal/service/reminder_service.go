package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"task-planner/internal/model"
	"task-planner/internal/planner"
)

// ReminderService builds the daily summary message sent by the
// notification job. It reads expanded, merged occurrences from the
// schedule pipeline rather than re-deriving recurrence itself.
type ReminderService struct {
	scheduleSvc *ScheduleService
}

func NewReminderService(scheduleSvc *ScheduleService) *ReminderService {
	return &ReminderService{scheduleSvc: scheduleSvc}
}

// DailySummary renders today's occurrences for one user as Telegram
// HTML. Returns an empty string when there is nothing to report.
func (s *ReminderService) DailySummary(ctx context.Context, user *model.User, now time.Time) (string, error) {
	instances, err := s.scheduleSvc.DayView(ctx, user, now)
	if err != nil {
		return "", err
	}
	if len(instances) == 0 {
		return "", nil
	}

	var pending, timed, done []planner.TaskInstance
	for _, inst := range instances {
		switch {
		case inst.Completed:
			done = append(done, inst)
		case inst.StartTime != "" && inst.EndTime != "":
			timed = append(timed, inst)
		default:
			pending = append(pending, inst)
		}
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Plan for the day</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Mon, 02 Jan 2006")))

	if len(timed) > 0 {
		builder.WriteString("⏰ <b>Scheduled</b>\n")
		for _, inst := range timed {
			builder.WriteString(formatInstance(inst))
		}
		builder.WriteByte('\n')
	}

	builder.WriteString("🔥 <b>To do</b>\n")
	if len(pending) == 0 {
		builder.WriteString("— nothing left, nice\n")
	} else {
		for _, inst := range pending {
			builder.WriteString(formatInstance(inst))
		}
	}

	if len(done) > 0 {
		builder.WriteString(fmt.Sprintf("\n✅ <b>Done</b> (%d)\n", len(done)))
		for _, inst := range done {
			builder.WriteString(fmt.Sprintf("✅ <s>%s</s>\n", html.EscapeString(inst.Title)))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatInstance(inst planner.TaskInstance) string {
	var sb strings.Builder

	icon := "🟢"
	switch inst.Priority {
	case model.PriorityHigh:
		icon = "🔴"
	case model.PriorityMedium:
		icon = "🟡"
	}
	if inst.IsRecurring {
		icon += "♻️"
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(inst.Title))))

	if inst.StartTime != "" && inst.EndTime != "" {
		sb.WriteString(fmt.Sprintf(" · %s–%s", inst.StartTime, inst.EndTime))
	}
	if inst.HasConflict {
		sb.WriteString(" ⚠️")
	}
	if inst.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(inst.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}
