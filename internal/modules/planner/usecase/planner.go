package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"compass/internal/modules/planner/domain"
	plannerdto "compass/internal/modules/planner/dto"
	plannerin "compass/internal/modules/planner/port/in"
	"compass/internal/modules/planner/service"
	"compass/internal/platform/calendar"
	apperrors "compass/internal/platform/errors"
)

const maxDelayReasonRunes = 120

// Interactor owns the single in-memory planner state. It is not safe for
// concurrent use.
type Interactor struct {
	svc   *service.PlannerService
	state *domain.State
}

func NewInteractor(svc *service.PlannerService) plannerin.Usecase {
	return &Interactor{svc: svc}
}

// Open loads the snapshot on first use and runs the rollover for today.
// Calling it again re-runs the rollover against the in-memory state, which
// is how long-running surfaces pick up a date change.
func (i *Interactor) Open(ctx context.Context) (plannerdto.OpenOutput, error) {
	if i.state == nil {
		i.state = i.svc.Load(ctx)
	}
	report := i.svc.Rollover(i.state)
	return plannerdto.OpenOutput{
		Today: report.To,
		Rollover: plannerdto.RolloverOutput{
			From:         report.From,
			To:           report.To,
			DaysWalked:   report.DaysWalked,
			TasksCarried: report.TasksCarried,
			FirstRun:     report.FirstRun,
		},
		Warning: i.svc.Persist(ctx, i.state),
	}, nil
}

func (i *Interactor) Today(_ context.Context) (string, error) {
	if err := i.requireOpen(); err != nil {
		return "", err
	}
	return i.svc.Today(), nil
}

func (i *Interactor) Day(_ context.Context, input plannerdto.DayInput) (plannerdto.DayOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.DayOutput{}, err
	}
	key, err := i.resolveDate(input.Date)
	if err != nil {
		return plannerdto.DayOutput{}, err
	}
	return toDayOutput(key, i.state.Days.Lookup(key), ""), nil
}

func (i *Interactor) ListTasks(_ context.Context, input plannerdto.ListTasksInput) (plannerdto.ListTasksOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.ListTasksOutput{}, err
	}
	key, err := i.resolveDate(input.Date)
	if err != nil {
		return plannerdto.ListTasksOutput{}, err
	}
	filter, ok := domain.ParseFilter(input.Filter)
	if !ok {
		return plannerdto.ListTasksOutput{}, fmt.Errorf("filter %q: %w", input.Filter, apperrors.ErrInvalidInput)
	}
	day := i.state.Days.Lookup(key)
	ordered := domain.DisplayOrder(day.Tasks, filter)
	tasks := make([]plannerdto.TaskOutput, 0, len(ordered))
	for _, task := range ordered {
		tasks = append(tasks, toTaskOutput(task, day.Recap.DelayReason(task.ID)))
	}
	return plannerdto.ListTasksOutput{Date: key, Filter: string(filter), Tasks: tasks}, nil
}

func (i *Interactor) AddTask(ctx context.Context, input plannerdto.AddTaskInput) (plannerdto.TaskMutationOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.TaskMutationOutput{}, err
	}
	text := domain.CleanText(input.Text)
	if text == "" {
		return plannerdto.TaskMutationOutput{}, fmt.Errorf("task text is required: %w", apperrors.ErrInvalidInput)
	}
	key := strings.TrimSpace(input.Date)
	if !calendar.IsValidKey(key) {
		key = i.svc.Today()
	}

	day := i.state.Days.EnsureDay(key)
	warnings := []string{}
	if input.MustDo && day.ActiveMustDoCount() >= domain.MustDoSoftCap {
		warnings = append(warnings, fmt.Sprintf("you already have %d active must-do tasks", domain.MustDoSoftCap))
	}
	task := i.svc.NewTask(text, domain.ParseContext(input.Context), input.Minutes, input.MustDo, domain.ParseSource(input.Source))
	day.Tasks = append(day.Tasks, task)

	warnings = appendWarning(warnings, i.svc.Persist(ctx, i.state))
	return plannerdto.TaskMutationOutput{Date: key, Task: toTaskOutput(task, ""), Warning: strings.Join(warnings, "; ")}, nil
}

func (i *Interactor) SetCompleted(ctx context.Context, input plannerdto.SetCompletedInput) (plannerdto.TaskMutationOutput, error) {
	key, day, idx, err := i.locateTask(input.Date, input.TaskID)
	if err != nil {
		return plannerdto.TaskMutationOutput{}, err
	}
	day.Tasks[idx].SetCompleted(input.Completed, i.svc.Now())
	task := day.Tasks[idx]
	return plannerdto.TaskMutationOutput{
		Date:    key,
		Task:    toTaskOutput(task, day.Recap.DelayReason(task.ID)),
		Warning: i.svc.Persist(ctx, i.state),
	}, nil
}

func (i *Interactor) EditTask(ctx context.Context, input plannerdto.EditTaskInput) (plannerdto.TaskMutationOutput, error) {
	text := domain.CleanText(input.Text)
	if text == "" {
		return plannerdto.TaskMutationOutput{}, fmt.Errorf("task text cannot be empty: %w", apperrors.ErrInvalidInput)
	}
	key, day, idx, err := i.locateTask(input.Date, input.TaskID)
	if err != nil {
		return plannerdto.TaskMutationOutput{}, err
	}
	day.Tasks[idx].Text = text
	task := day.Tasks[idx]
	return plannerdto.TaskMutationOutput{
		Date:    key,
		Task:    toTaskOutput(task, day.Recap.DelayReason(task.ID)),
		Warning: i.svc.Persist(ctx, i.state),
	}, nil
}

func (i *Interactor) DeleteTask(ctx context.Context, input plannerdto.DeleteTaskInput) (plannerdto.DeleteTaskOutput, error) {
	key, day, idx, err := i.locateTask(input.Date, input.TaskID)
	if err != nil {
		return plannerdto.DeleteTaskOutput{}, err
	}
	taskID := day.Tasks[idx].ID
	day.Tasks = append(day.Tasks[:idx], day.Tasks[idx+1:]...)
	day.Recap.DeleteDelayReason(taskID)
	return plannerdto.DeleteTaskOutput{Date: key, TaskID: taskID, Warning: i.svc.Persist(ctx, i.state)}, nil
}

func (i *Interactor) SetKickoff(ctx context.Context, input plannerdto.SetKickoffInput) (plannerdto.DayOutput, error) {
	return i.mutateDay(ctx, input.Date, func(day *domain.Day) error {
		day.Kickoff = strings.TrimSpace(input.Kickoff)
		return nil
	})
}

func (i *Interactor) SetRecapSummary(ctx context.Context, input plannerdto.SetRecapSummaryInput) (plannerdto.DayOutput, error) {
	return i.mutateDay(ctx, input.Date, func(day *domain.Day) error {
		day.Recap.Summary = strings.TrimSpace(input.Summary)
		return nil
	})
}

func (i *Interactor) SetDelayReason(ctx context.Context, input plannerdto.SetDelayReasonInput) (plannerdto.DayOutput, error) {
	reason := strings.TrimSpace(input.Reason)
	if utf8.RuneCountInString(reason) > maxDelayReasonRunes {
		return plannerdto.DayOutput{}, fmt.Errorf("delay reason longer than %d characters: %w", maxDelayReasonRunes, apperrors.ErrInvalidInput)
	}
	if _, _, _, err := i.locateTask(input.Date, input.TaskID); err != nil {
		return plannerdto.DayOutput{}, err
	}
	return i.mutateDay(ctx, input.Date, func(day *domain.Day) error {
		day.Recap.SetDelayReason(input.TaskID, reason)
		return nil
	})
}

// RollPending copies unfinished tasks between two days on request. It does
// not touch the RolledForward latch of either day.
func (i *Interactor) RollPending(ctx context.Context, input plannerdto.RollInput) (plannerdto.RollOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.RollOutput{}, err
	}
	from, err := i.resolveDate(input.From)
	if err != nil {
		return plannerdto.RollOutput{}, err
	}
	to := strings.TrimSpace(input.To)
	if to == "" {
		if to, err = calendar.Shift(from, 1); err != nil {
			return plannerdto.RollOutput{}, err
		}
	} else if !calendar.IsValidKey(to) {
		return plannerdto.RollOutput{}, fmt.Errorf("date %q: %w", input.To, apperrors.ErrInvalidDateKey)
	}
	if from == to {
		return plannerdto.RollOutput{}, fmt.Errorf("cannot roll a day onto itself: %w", apperrors.ErrInvalidInput)
	}
	carried := i.svc.CopyPending(i.state, from, to)
	return plannerdto.RollOutput{From: from, To: to, Carried: carried, Warning: i.svc.Persist(ctx, i.state)}, nil
}

func (i *Interactor) WeekPlan(_ context.Context, input plannerdto.WeekPlanInput) (plannerdto.WeekPlanOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.WeekPlanOutput{}, err
	}
	anchor, err := i.resolveDate(input.Date)
	if err != nil {
		return plannerdto.WeekPlanOutput{}, err
	}
	keys, err := calendar.WeekKeys(anchor)
	if err != nil {
		return plannerdto.WeekPlanOutput{}, err
	}
	today := i.svc.Today()
	out := plannerdto.WeekPlanOutput{Start: keys[0], End: keys[len(keys)-1], Days: make([]plannerdto.WeekPlanDay, 0, len(keys))}
	for _, key := range keys {
		parsed, err := calendar.ParseKey(key, time.UTC)
		if err != nil {
			return plannerdto.WeekPlanOutput{}, err
		}
		day := i.state.Days.Lookup(key)
		out.Days = append(out.Days, plannerdto.WeekPlanDay{
			Date:      key,
			Weekday:   parsed.Weekday(),
			Planned:   len(day.Tasks),
			Completed: day.CompletedCount(),
			Selected:  key == anchor,
			IsToday:   key == today,
		})
	}
	return out, nil
}

func (i *Interactor) Settings(_ context.Context) (plannerdto.SettingsOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.SettingsOutput{}, err
	}
	return toSettingsOutput(i.state.Settings, ""), nil
}

func (i *Interactor) SetReminder(ctx context.Context, input plannerdto.SetReminderInput) (plannerdto.SettingsOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.SettingsOutput{}, err
	}
	reminderTime := strings.TrimSpace(input.Time)
	if reminderTime != "" && !calendar.IsValidTimeOfDay(reminderTime) {
		return plannerdto.SettingsOutput{}, fmt.Errorf("reminder time %q: %w", input.Time, apperrors.ErrInvalidTime)
	}
	settings, warning, err := i.UpdateSettings(ctx, func(s *domain.Settings) bool {
		changed := false
		if input.Enabled != nil && s.RemindersEnabled != *input.Enabled {
			s.RemindersEnabled = *input.Enabled
			changed = true
		}
		if reminderTime != "" && s.ReminderTime != reminderTime {
			s.ReminderTime = reminderTime
			s.LastReminderSentDate = ""
			changed = true
		}
		return changed
	})
	if err != nil {
		return plannerdto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings, warning), nil
}

func (i *Interactor) ExportDay(ctx context.Context, input plannerdto.ExportDayInput) (plannerdto.ExportDayOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.ExportDayOutput{}, err
	}
	key, err := i.resolveDate(input.Date)
	if err != nil {
		return plannerdto.ExportDayOutput{}, err
	}
	path, err := i.svc.Export(ctx, key, i.state.Days.Lookup(key))
	if err != nil {
		return plannerdto.ExportDayOutput{}, err
	}
	return plannerdto.ExportDayOutput{Date: key, Path: path}, nil
}

func (i *Interactor) View(_ context.Context) (domain.Days, domain.Settings, error) {
	if err := i.requireOpen(); err != nil {
		return nil, domain.Settings{}, err
	}
	return i.state.Days.Clone(), i.state.Settings, nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, fn func(*domain.Settings) bool) (domain.Settings, string, error) {
	if err := i.requireOpen(); err != nil {
		return domain.Settings{}, "", err
	}
	if !fn(&i.state.Settings) {
		return i.state.Settings, "", nil
	}
	warning := i.svc.Persist(ctx, i.state)
	return i.state.Settings, warning, nil
}

func (i *Interactor) requireOpen() error {
	if i.state == nil {
		return apperrors.ErrNotOpened
	}
	return nil
}

func (i *Interactor) resolveDate(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return i.svc.Today(), nil
	}
	if !calendar.IsValidKey(key) {
		return "", fmt.Errorf("date %q: %w", raw, apperrors.ErrInvalidDateKey)
	}
	return key, nil
}

// locateTask finds a task without materializing its day.
func (i *Interactor) locateTask(date, taskID string) (string, *domain.Day, int, error) {
	if err := i.requireOpen(); err != nil {
		return "", nil, -1, err
	}
	key, err := i.resolveDate(date)
	if err != nil {
		return "", nil, -1, err
	}
	day, ok := i.state.Days[key]
	if !ok || day == nil {
		return "", nil, -1, fmt.Errorf("task %q on %s: %w", taskID, key, apperrors.ErrNotFound)
	}
	idx, ok := day.FindTask(taskID)
	if !ok {
		return "", nil, -1, fmt.Errorf("task %q on %s: %w", taskID, key, apperrors.ErrNotFound)
	}
	return key, day, idx, nil
}

func (i *Interactor) mutateDay(ctx context.Context, date string, fn func(*domain.Day) error) (plannerdto.DayOutput, error) {
	if err := i.requireOpen(); err != nil {
		return plannerdto.DayOutput{}, err
	}
	key, err := i.resolveDate(date)
	if err != nil {
		return plannerdto.DayOutput{}, err
	}
	day := i.state.Days.EnsureDay(key)
	if err := fn(day); err != nil {
		return plannerdto.DayOutput{}, err
	}
	return toDayOutput(key, *day, i.svc.Persist(ctx, i.state)), nil
}

func appendWarning(warnings []string, warning string) []string {
	if warning == "" {
		return warnings
	}
	return append(warnings, warning)
}
