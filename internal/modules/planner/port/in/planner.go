package in

import (
	"context"

	"compass/internal/modules/planner/domain"
	"compass/internal/modules/planner/dto"
)

type Usecase interface {
	Open(ctx context.Context) (dto.OpenOutput, error)
	Today(ctx context.Context) (string, error)
	Day(ctx context.Context, input dto.DayInput) (dto.DayOutput, error)
	ListTasks(ctx context.Context, input dto.ListTasksInput) (dto.ListTasksOutput, error)
	AddTask(ctx context.Context, input dto.AddTaskInput) (dto.TaskMutationOutput, error)
	SetCompleted(ctx context.Context, input dto.SetCompletedInput) (dto.TaskMutationOutput, error)
	EditTask(ctx context.Context, input dto.EditTaskInput) (dto.TaskMutationOutput, error)
	DeleteTask(ctx context.Context, input dto.DeleteTaskInput) (dto.DeleteTaskOutput, error)
	SetKickoff(ctx context.Context, input dto.SetKickoffInput) (dto.DayOutput, error)
	SetRecapSummary(ctx context.Context, input dto.SetRecapSummaryInput) (dto.DayOutput, error)
	SetDelayReason(ctx context.Context, input dto.SetDelayReasonInput) (dto.DayOutput, error)
	RollPending(ctx context.Context, input dto.RollInput) (dto.RollOutput, error)
	WeekPlan(ctx context.Context, input dto.WeekPlanInput) (dto.WeekPlanOutput, error)
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	SetReminder(ctx context.Context, input dto.SetReminderInput) (dto.SettingsOutput, error)
	ExportDay(ctx context.Context, input dto.ExportDayInput) (dto.ExportDayOutput, error)

	// View returns deep copies of the day store and settings for read-only
	// consumers such as analytics.
	View(ctx context.Context) (domain.Days, domain.Settings, error)
	// UpdateSettings applies fn to the live settings and persists when fn
	// reports a change. The returned string is a persistence warning.
	UpdateSettings(ctx context.Context, fn func(*domain.Settings) bool) (domain.Settings, string, error)
}
