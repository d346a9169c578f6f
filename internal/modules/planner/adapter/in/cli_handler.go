package in

import (
	"context"

	plannerdto "compass/internal/modules/planner/dto"
	plannerin "compass/internal/modules/planner/port/in"
)

type CLIHandler struct {
	usecase plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context) (plannerdto.OpenOutput, error) {
	return h.usecase.Open(ctx)
}

func (h CLIHandler) Day(ctx context.Context, date string) (plannerdto.DayOutput, error) {
	return h.usecase.Day(ctx, plannerdto.DayInput{Date: date})
}

func (h CLIHandler) List(ctx context.Context, date, filter string) (plannerdto.ListTasksOutput, error) {
	return h.usecase.ListTasks(ctx, plannerdto.ListTasksInput{Date: date, Filter: filter})
}

func (h CLIHandler) Add(ctx context.Context, input plannerdto.AddTaskInput) (plannerdto.TaskMutationOutput, error) {
	return h.usecase.AddTask(ctx, input)
}

func (h CLIHandler) Complete(ctx context.Context, date, taskID string, completed bool) (plannerdto.TaskMutationOutput, error) {
	return h.usecase.SetCompleted(ctx, plannerdto.SetCompletedInput{Date: date, TaskID: taskID, Completed: completed})
}

func (h CLIHandler) Edit(ctx context.Context, date, taskID, text string) (plannerdto.TaskMutationOutput, error) {
	return h.usecase.EditTask(ctx, plannerdto.EditTaskInput{Date: date, TaskID: taskID, Text: text})
}

func (h CLIHandler) Delete(ctx context.Context, date, taskID string) (plannerdto.DeleteTaskOutput, error) {
	return h.usecase.DeleteTask(ctx, plannerdto.DeleteTaskInput{Date: date, TaskID: taskID})
}

func (h CLIHandler) Kickoff(ctx context.Context, date, kickoff string) (plannerdto.DayOutput, error) {
	return h.usecase.SetKickoff(ctx, plannerdto.SetKickoffInput{Date: date, Kickoff: kickoff})
}

func (h CLIHandler) RecapSummary(ctx context.Context, date, summary string) (plannerdto.DayOutput, error) {
	return h.usecase.SetRecapSummary(ctx, plannerdto.SetRecapSummaryInput{Date: date, Summary: summary})
}

func (h CLIHandler) DelayReason(ctx context.Context, date, taskID, reason string) (plannerdto.DayOutput, error) {
	return h.usecase.SetDelayReason(ctx, plannerdto.SetDelayReasonInput{Date: date, TaskID: taskID, Reason: reason})
}

func (h CLIHandler) Roll(ctx context.Context, from, to string) (plannerdto.RollOutput, error) {
	return h.usecase.RollPending(ctx, plannerdto.RollInput{From: from, To: to})
}

func (h CLIHandler) Week(ctx context.Context, date string) (plannerdto.WeekPlanOutput, error) {
	return h.usecase.WeekPlan(ctx, plannerdto.WeekPlanInput{Date: date})
}

func (h CLIHandler) Settings(ctx context.Context) (plannerdto.SettingsOutput, error) {
	return h.usecase.Settings(ctx)
}

func (h CLIHandler) SetReminder(ctx context.Context, enabled *bool, reminderTime string) (plannerdto.SettingsOutput, error) {
	return h.usecase.SetReminder(ctx, plannerdto.SetReminderInput{Enabled: enabled, Time: reminderTime})
}

func (h CLIHandler) Export(ctx context.Context, date string) (plannerdto.ExportDayOutput, error) {
	return h.usecase.ExportDay(ctx, plannerdto.ExportDayInput{Date: date})
}
