package out

import (
	"context"

	planner "compass/internal/modules/planner/domain"
)

// PlannerState is the slice of the planner that analytics read from and
// write derived settings back to.
type PlannerState interface {
	View(ctx context.Context) (planner.Days, planner.Settings, error)
	UpdateSettings(ctx context.Context, fn func(*planner.Settings) bool) (planner.Settings, string, error)
}

type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}
