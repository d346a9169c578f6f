package in

import (
	"context"

	insightsdto "compass/internal/modules/insights/dto"
	insightsin "compass/internal/modules/insights/port/in"
)

type CLIHandler struct {
	usecase insightsin.Usecase
}

func NewCLIHandler(usecase insightsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context) (insightsdto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Routine(ctx context.Context) (insightsdto.RoutineOutput, error) {
	return h.usecase.Routine(ctx)
}

func (h CLIHandler) Weekly(ctx context.Context) (insightsdto.WeeklyOutput, error) {
	return h.usecase.Weekly(ctx)
}

func (h CLIHandler) CheckReminder(ctx context.Context) (insightsdto.ReminderOutput, error) {
	return h.usecase.CheckReminder(ctx)
}

func (h CLIHandler) HydrateReminderDefaults(ctx context.Context) (insightsdto.HydrateOutput, error) {
	return h.usecase.HydrateReminderDefaults(ctx)
}
