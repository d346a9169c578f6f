package out

import (
	"context"

	insightsout "compass/internal/modules/insights/port/out"
	planner "compass/internal/modules/planner/domain"
	plannerin "compass/internal/modules/planner/port/in"
)

type PlannerStateAdapter struct {
	planner plannerin.Usecase
}

func NewPlannerStateAdapter(usecase plannerin.Usecase) insightsout.PlannerState {
	return &PlannerStateAdapter{planner: usecase}
}

func (a *PlannerStateAdapter) View(ctx context.Context) (planner.Days, planner.Settings, error) {
	return a.planner.View(ctx)
}

func (a *PlannerStateAdapter) UpdateSettings(ctx context.Context, fn func(*planner.Settings) bool) (planner.Settings, string, error) {
	return a.planner.UpdateSettings(ctx, fn)
}
