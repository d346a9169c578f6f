package in

import (
	"context"

	"compass/internal/modules/insights/dto"
)

type Usecase interface {
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Routine(ctx context.Context) (dto.RoutineOutput, error)
	Weekly(ctx context.Context) (dto.WeeklyOutput, error)
	CheckReminder(ctx context.Context) (dto.ReminderOutput, error)
	HydrateReminderDefaults(ctx context.Context) (dto.HydrateOutput, error)
}
