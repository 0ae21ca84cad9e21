package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-planner/internal/apperr"
	"task-planner/internal/config"
	"task-planner/internal/dateutil"
	"task-planner/internal/model"
	"task-planner/internal/planner"
	"task-planner/internal/repository"
	"task-planner/internal/service"
)

type conversationStage int

const (
	stageNone conversationStage = iota
	stageTitle
	stageSection
	stageDays
	stageTimes
	stageDates
)

const (
	cbCompletePrefix   = "complete:"
	cbUncompletePrefix = "uncomplete:"
	cbSkipPrefix       = "skip:"
	cbDeletePrefix     = "delete:"
)

const (
	btnSkip     = "⏭️ Skip"
	btnCancel   = "⏪ Cancel"
	iconDone    = "✅"
	iconPending = "☐"
)

type conversationState struct {
	stage conversationStage
	input service.TaskInput
}

// Bot is the Telegram front-end over the planner services.
type Bot struct {
	api           *tgbotapi.BotAPI
	userRepo      *repository.UserRepository
	taskSvc       *service.TaskService
	scheduleSvc   *service.ScheduleService
	completionSvc *service.CompletionService
	reminderSvc   *service.ReminderService
	config        *config.Config
	conversations map[int64]*conversationState
	mu            sync.Mutex
}

func New(token string, userRepo *repository.UserRepository, taskSvc *service.TaskService, scheduleSvc *service.ScheduleService, completionSvc *service.CompletionService, reminderSvc *service.ReminderService, cfg *config.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return &Bot{
		api:           api,
		userRepo:      userRepo,
		taskSvc:       taskSvc,
		scheduleSvc:   scheduleSvc,
		completionSvc: completionSvc,
		reminderSvc:   reminderSvc,
		config:        cfg,
		conversations: make(map[int64]*conversationState),
	}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

// SendDailySummaries pushes the reminder text to every registered user.
// Called by the cron job.
func (b *Bot) SendDailySummaries(ctx context.Context) error {
	users, err := b.userRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range users {
		user := users[i]
		text, err := b.reminderSvc.DailySummary(ctx, &user, now)
		if err != nil {
			log.Printf("summary for user %d: %v", user.ID, err)
			continue
		}
		if text == "" {
			continue
		}
		if err := b.sendText(user.TelegramID, text); err != nil {
			log.Printf("send summary to %d: %v", user.TelegramID, err)
		}
	}
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && strings.EqualFold(strings.TrimSpace(msg.Text), btnCancel) {
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Cancelled. Send /add to start over.")
	}

	if msg.IsCommand() {
		log.Printf("[info] command from %d: /%s %s", msg.From.ID, msg.Command(), msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	if b.hasConversation(msg.From.ID) {
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "Not sure what you mean. /add creates a task, /help lists commands.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "add":
		return b.startAddConversation(ctx, msg)
	case "today":
		return b.handleDayView(ctx, msg, time.Now())
	case "week":
		return b.handleWeekView(ctx, msg)
	case "tasks":
		return b.handleListTasks(ctx, msg)
	case "summary":
		return b.handleSummary(ctx, msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command, see /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "there"
	}

	text := fmt.Sprintf(
		"👋 Hi %s!\n<b>I keep your day planned: one-off and recurring tasks, timetable and all.</b>\n\nCommands:\n"+
			"• /add — create a task step by step\n"+
			"• /today — today's occurrences with toggles\n"+
			"• /week — this week's occurrences\n"+
			"• /tasks — stored task definitions\n"+
			"• /summary — preview the daily summary\n"+
			"• /cancel — abort the current dialog\n\n"+
			"I send the day's plan every morning at %s.",
		escape(name), b.config.SummaryTime,
	)

	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	text := "ℹ️ <b>Help</b>\n" +
		"• /add — create a task; recurring tasks take weekday names like <code>mon wed fri</code>\n" +
		"• /today — tick occurrences done, skip a single occurrence of a series\n" +
		"• /week — Monday through Sunday view, conflicts flagged with ⚠️\n" +
		"• /tasks — list definitions; delete removes the whole series\n" +
		"• /summary — what the morning notification will say\n" +
		"• /cancel — abort the current dialog"
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleSummary(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reminderSvc.DailySummary(ctx, user, time.Now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the summary: %s", escape(err.Error())))
	}
	if text == "" {
		text = "Nothing planned for today."
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleDayView(ctx context.Context, msg *tgbotapi.Message, date time.Time) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	instances, err := b.scheduleSvc.DayView(ctx, user, date)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load the day: %s", escape(err.Error())))
	}
	if len(instances) == 0 {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("🗓 %s — nothing planned.", date.Format("Mon, 02 Jan")))
	}

	text := fmt.Sprintf("🗓 <b>%s</b>\n\n%s", date.Format("Mon, 02 Jan"), renderInstances(instances))
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyMarkup = instanceKeyboard(instances)
	_, err = b.api.Send(reply)
	return err
}

func (b *Bot) handleWeekView(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	now := time.Now()
	instances, err := b.scheduleSvc.WeekView(ctx, user, now)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load the week: %s", escape(err.Error())))
	}

	start := dateutil.WeekStart(now)
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🗓 <b>Week of %s</b>\n", start.Format("02 Jan")))
	if len(instances) == 0 {
		builder.WriteString("\nNothing planned this week.")
		return b.sendText(msg.Chat.ID, builder.String())
	}

	currentDate := ""
	for _, inst := range instances {
		if inst.InstanceDate != currentDate {
			currentDate = inst.InstanceDate
			if day, err := dateutil.ParseDate(currentDate); err == nil {
				builder.WriteString(fmt.Sprintf("\n<b>%s</b>\n", day.Format("Mon, 02 Jan")))
			}
		}
		builder.WriteString(renderInstanceLine(inst))
	}
	return b.sendText(msg.Chat.ID, builder.String())
}

func (b *Bot) handleListTasks(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	tasks, err := b.taskSvc.ListTasks(ctx, user)
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not load tasks: %s", escape(err.Error())))
	}
	if len(tasks) == 0 {
		return b.sendText(msg.Chat.ID, "No tasks yet. /add creates one.")
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Your tasks</b>\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, task := range tasks {
		builder.WriteString(fmt.Sprintf("• %s", escape(task.Title)))
		if task.IsRecurring {
			builder.WriteString(fmt.Sprintf(" ♻️ <i>(%s)</i>", strings.Join(shortDays(task.RecurringDays), " ")))
		}
		if task.Section != model.SectionNone {
			builder.WriteString(fmt.Sprintf(" · %s", task.Section))
		}
		builder.WriteByte('\n')
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+truncate(task.Title, 24), cbDeletePrefix+task.ID),
		))
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, builder.String())
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err = b.api.Send(reply)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.From == nil || cb.Message == nil {
		return nil
	}
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		return err
	}

	data := cb.Data
	var ack string
	switch {
	case strings.HasPrefix(data, cbCompletePrefix):
		taskID, date, ok := splitCallback(strings.TrimPrefix(data, cbCompletePrefix))
		if !ok {
			return nil
		}
		if err := b.completionSvc.Complete(ctx, user, taskID, date); err != nil {
			ack = userFacingError(err)
		} else {
			ack = "Marked done ✅"
		}
	case strings.HasPrefix(data, cbUncompletePrefix):
		taskID, date, ok := splitCallback(strings.TrimPrefix(data, cbUncompletePrefix))
		if !ok {
			return nil
		}
		if err := b.completionSvc.Uncomplete(ctx, user, taskID, date); err != nil {
			ack = userFacingError(err)
		} else {
			ack = "Back to pending"
		}
	case strings.HasPrefix(data, cbSkipPrefix):
		taskID, date, ok := splitCallback(strings.TrimPrefix(data, cbSkipPrefix))
		if !ok {
			return nil
		}
		if err := b.taskSvc.SkipOccurrence(ctx, user, taskID, date); err != nil {
			ack = userFacingError(err)
		} else {
			ack = "Occurrence skipped"
		}
	case strings.HasPrefix(data, cbDeletePrefix):
		taskID := strings.TrimPrefix(data, cbDeletePrefix)
		if err := b.taskSvc.DeleteTask(ctx, user, taskID); err != nil {
			ack = userFacingError(err)
		} else {
			ack = "Task deleted"
		}
	default:
		return nil
	}

	callback := tgbotapi.NewCallback(cb.ID, ack)
	if _, err := b.api.Request(callback); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

func (b *Bot) startAddConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	b.setConversation(msg.From.ID, &conversationState{stage: stageTitle})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 New task.\n<b>Step 1:</b> what should I call it?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageTitle:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The title cannot be empty. Try again.", cancelKeyboard())
		}
		state.input.Title = text
		state.stage = stageSection
		return b.sendWithReplyMarkup(msg.Chat.ID, "📂 <b>Step 2:</b> pick a section.", sectionKeyboard())
	case stageSection:
		section := strings.ToLower(text)
		switch section {
		case model.SectionDaily, model.SectionToday, model.SectionUpcoming, model.SectionNone:
			state.input.Section = section
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Pick one of the section buttons.", sectionKeyboard())
		}
		if section == model.SectionToday {
			// A today task spans one day, skip the recurrence question.
			state.stage = stageTimes
			return b.sendWithReplyMarkup(msg.Chat.ID,
				"⏰ <b>Step 3:</b> time range like <code>09:00-10:00</code>, or Skip.", skipKeyboard())
		}
		state.stage = stageDays
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"🔁 <b>Step 3:</b> repeat on which weekdays? Send names like <code>mon wed fri</code>, or Skip for a one-off.", skipKeyboard())
	case stageDays:
		if !isSkipInput(text) {
			days, err := parseDayInput(text)
			if err != nil {
				return b.sendWithReplyMarkup(msg.Chat.ID, escape(err.Error())+" Try again or Skip.", skipKeyboard())
			}
			state.input.IsRecurring = true
			state.input.RecurringDays = days
		}
		state.stage = stageTimes
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"⏰ <b>Step 4:</b> time range like <code>09:00-10:00</code>, or Skip.", skipKeyboard())
	case stageTimes:
		if !isSkipInput(text) {
			start, end, err := parseTimeRange(text)
			if err != nil {
				return b.sendWithReplyMarkup(msg.Chat.ID, escape(err.Error())+" Try again or Skip.", skipKeyboard())
			}
			state.input.StartTime = start
			state.input.EndTime = end
			state.input.IsSchedule = true
		}
		if !state.input.IsRecurring && state.input.Section != model.SectionDaily {
			err := b.finishTaskCreation(ctx, msg.From, state.input, msg.Chat.ID)
			b.clearConversation(msg.From.ID)
			return err
		}
		state.stage = stageDates
		return b.sendWithReplyMarkup(msg.Chat.ID,
			"📆 <b>Step 5:</b> series window like <code>2026-09-01..2026-12-31</code>, or Skip for no bounds.", skipKeyboard())
	case stageDates:
		if !isSkipInput(text) {
			start, end, err := parseDateRange(text)
			if err != nil {
				return b.sendWithReplyMarkup(msg.Chat.ID, escape(err.Error())+" Try again or Skip.", skipKeyboard())
			}
			state.input.StartDate = start
			state.input.EndDate = end
		}
		err := b.finishTaskCreation(ctx, msg.From, state.input, msg.Chat.ID)
		b.clearConversation(msg.From.ID)
		return err
	default:
		b.clearConversation(msg.From.ID)
		return nil
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, from *tgbotapi.User, input service.TaskInput, chatID int64) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}
	task, err := b.taskSvc.CreateTask(ctx, user, input)
	if err != nil {
		return b.sendWithReplyMarkup(chatID, fmt.Sprintf("Could not create the task: %s", escape(err.Error())), tgbotapi.NewRemoveKeyboard(true))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Created <b>%s</b>", escape(task.Title)))
	if task.IsRecurring {
		sb.WriteString(fmt.Sprintf("\n♻️ repeats: %s", strings.Join(shortDays(task.RecurringDays), " ")))
	}
	if task.StartTime != "" && task.EndTime != "" {
		sb.WriteString(fmt.Sprintf("\n⏰ %s–%s", task.StartTime, task.EndTime))
	}
	return b.sendWithReplyMarkup(chatID, sb.String(), tgbotapi.NewRemoveKeyboard(true))
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*model.User, error) {
	return b.userRepo.UpsertFromTelegram(ctx, from.ID, from.FirstName, from.LastName, from.UserName)
}

// conversation state helpers

func (b *Bot) setConversation(userID int64, state *conversationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conversations[userID] = state
}

func (b *Bot) getConversation(userID int64) *conversationState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conversations[userID]
}

func (b *Bot) hasConversation(userID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.conversations[userID]
	return ok
}

func (b *Bot) clearConversation(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conversations, userID)
}

// rendering helpers

func renderInstances(instances []planner.TaskInstance) string {
	var builder strings.Builder
	for _, inst := range instances {
		builder.WriteString(renderInstanceLine(inst))
	}
	return builder.String()
}

func renderInstanceLine(inst planner.TaskInstance) string {
	var sb strings.Builder
	box := iconPending
	if inst.Completed {
		box = iconDone
	}
	sb.WriteString(fmt.Sprintf("%s %s", box, escape(inst.Title)))
	if inst.StartTime != "" && inst.EndTime != "" {
		sb.WriteString(fmt.Sprintf(" · %s–%s", inst.StartTime, inst.EndTime))
	}
	if inst.HasConflict {
		sb.WriteString(" ⚠️")
	}
	if inst.IsRecurring {
		sb.WriteString(" ♻️")
	}
	sb.WriteByte('\n')
	return sb.String()
}

func instanceKeyboard(instances []planner.TaskInstance) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, inst := range instances {
		key := inst.ParentTaskID + ":" + inst.InstanceDate
		var row []tgbotapi.InlineKeyboardButton
		if inst.Completed {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("↩️ "+truncate(inst.Title, 20), cbUncompletePrefix+key))
		} else {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("✅ "+truncate(inst.Title, 20), cbCompletePrefix+key))
		}
		if inst.IsRecurring {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("⏭", cbSkipPrefix+key))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// splitCallback recovers (task id, date) from callback payloads of the
// form "taskID:YYYY-MM-DD". Task ids are UUIDs and contain no colon.
func splitCallback(data string) (taskID, date string, ok bool) {
	idx := strings.LastIndex(data, ":")
	if idx < 0 {
		return "", "", false
	}
	return data[:idx], data[idx+1:], true
}

func userFacingError(err error) string {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return "That task no longer exists"
	case apperr.IsValidation(err):
		return err.Error()
	default:
		return "Something went wrong, try again"
	}
}

// input parsing helpers

func isSkipInput(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == "skip" || t == "-" || strings.EqualFold(strings.TrimSpace(text), btnSkip)
}

var dayAliases = map[string]string{
	"sun": "sunday", "mon": "monday", "tue": "tuesday", "wed": "wednesday",
	"thu": "thursday", "fri": "friday", "sat": "saturday",
}

func parseDayInput(text string) ([]string, error) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ' ' || r == ','
	})
	var days []string
	for _, f := range fields {
		name := f
		if full, ok := dayAliases[f]; ok {
			name = full
		}
		if !dateutil.ValidDayName(name) {
			return nil, fmt.Errorf("I don't know the weekday %q.", f)
		}
		days = append(days, name)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("Send at least one weekday.")
	}
	return days, nil
}

func parseTimeRange(text string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(text), "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("Use the form 09:00-10:00.")
	}
	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if _, err := dateutil.ParseClock(start); err != nil {
		return "", "", fmt.Errorf("Start time %q is not HH:MM.", start)
	}
	if _, err := dateutil.ParseClock(end); err != nil {
		return "", "", fmt.Errorf("End time %q is not HH:MM.", end)
	}
	return start, end, nil
}

func parseDateRange(text string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(text), "..", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("Use the form 2026-09-01..2026-12-31.")
	}
	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if _, err := dateutil.ParseDate(start); err != nil {
		return "", "", fmt.Errorf("Start date %q is not YYYY-MM-DD.", start)
	}
	if _, err := dateutil.ParseDate(end); err != nil {
		return "", "", fmt.Errorf("End date %q is not YYYY-MM-DD.", end)
	}
	return start, end, nil
}

func shortDays(days []string) []string {
	out := make([]string, len(days))
	for i, d := range days {
		if len(d) >= 3 {
			out[i] = d[:3]
		} else {
			out[i] = d
		}
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func escape(s string) string {
	return html.EscapeString(s)
}

// keyboards

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
			tgbotapi.NewKeyboardButton(btnCancel),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func sectionKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(model.SectionDaily),
			tgbotapi.NewKeyboardButton(model.SectionToday),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(model.SectionUpcoming),
			tgbotapi.NewKeyboardButton(model.SectionNone),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// send helpers

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
