package usecase

import (
	"context"
	"strings"

	"compass/internal/modules/insights/domain"
	insightsdto "compass/internal/modules/insights/dto"
	insightsin "compass/internal/modules/insights/port/in"
	insightsout "compass/internal/modules/insights/port/out"
	"compass/internal/modules/insights/service"
	planner "compass/internal/modules/planner/domain"
	"compass/internal/platform/calendar"
)

type Interactor struct {
	svc   *service.InsightsService
	state insightsout.PlannerState
}

func NewInteractor(svc *service.InsightsService, state insightsout.PlannerState) insightsin.Usecase {
	return &Interactor{svc: svc, state: state}
}

// Stats computes the dashboard metrics and ratchets the best streak.
func (i *Interactor) Stats(ctx context.Context) (insightsdto.StatsOutput, error) {
	days, _, err := i.state.View(ctx)
	if err != nil {
		return insightsdto.StatsOutput{}, err
	}
	today := calendar.Key(i.svc.Now())
	streak := domain.ComputeStreak(days, today)
	settings, warning, err := i.state.UpdateSettings(ctx, func(s *planner.Settings) bool {
		return s.RatchetBestStreak(streak)
	})
	if err != nil {
		return insightsdto.StatsOutput{}, err
	}
	progress := domain.TodayProgress(days, today)
	return insightsdto.StatsOutput{
		Today:          today,
		Streak:         streak,
		BestStreak:     settings.BestStreak,
		Consistency:    domain.ComputeConsistencyScore(days, today, domain.ConsistencyWindow),
		TodayCompleted: progress.Completed,
		TodayTotal:     progress.Total,
		Warning:        warning,
	}, nil
}

func (i *Interactor) Routine(ctx context.Context) (insightsdto.RoutineOutput, error) {
	days, _, err := i.state.View(ctx)
	if err != nil {
		return insightsdto.RoutineOutput{}, err
	}
	now := i.svc.Now()
	suggestion := domain.SuggestRoutine(days, calendar.Key(now), now.Location())
	return insightsdto.RoutineOutput{
		Time:         suggestion.Time,
		Message:      suggestion.Message,
		SampleCount:  suggestion.SampleCount,
		FromFallback: suggestion.FromFallback,
	}, nil
}

func (i *Interactor) Weekly(ctx context.Context) (insightsdto.WeeklyOutput, error) {
	days, settings, err := i.state.View(ctx)
	if err != nil {
		return insightsdto.WeeklyOutput{}, err
	}
	analysis := domain.BuildWeeklyAnalysis(days, calendar.Key(i.svc.Now()))
	out := insightsdto.WeeklyOutput{
		TotalCompleted:     analysis.TotalCompleted,
		MustCompletionRate: analysis.MustCompletionRate,
		TopWins:            analysis.TopWins,
		TopDelayReason:     analysis.TopDelayReason,
		BestStreak:         settings.BestStreak,
	}
	if len(analysis.Keys) > 0 {
		out.Start, out.End = analysis.Keys[0], analysis.Keys[len(analysis.Keys)-1]
	}
	for _, item := range analysis.TimeByContext {
		out.TimeByContext = append(out.TimeByContext, insightsdto.ContextMinutesOutput{Context: string(item.Context), Minutes: item.Minutes})
	}
	for _, item := range analysis.DelayByContext {
		out.DelayByContext = append(out.DelayByContext, insightsdto.ContextCountOutput{Context: string(item.Context), Count: item.Count})
	}
	return out, nil
}

// CheckReminder fires the daily nudge at most once per day. The message is
// returned even when delivery fails so the caller can show it in-app.
func (i *Interactor) CheckReminder(ctx context.Context) (insightsdto.ReminderOutput, error) {
	days, settings, err := i.state.View(ctx)
	if err != nil {
		return insightsdto.ReminderOutput{}, err
	}
	decision := domain.CheckReminder(days, settings, i.svc.Now())
	out := insightsdto.ReminderOutput{Today: decision.Today, Due: decision.Due, Message: decision.Message}
	if decision.Message != "" {
		out.Delivered = i.svc.Deliver(ctx, decision.Message)
	}
	if decision.MarkSent {
		_, warning, err := i.state.UpdateSettings(ctx, func(s *planner.Settings) bool {
			if s.LastReminderSentDate == decision.Today {
				return false
			}
			s.LastReminderSentDate = decision.Today
			return true
		})
		if err != nil {
			return insightsdto.ReminderOutput{}, err
		}
		out.Warning = warning
	}
	if out.Due {
		i.svc.Logger().Debug("reminder check", "today", out.Today, "delivered", out.Delivered, "message", out.Message)
	}
	return out, nil
}

// HydrateReminderDefaults seeds an empty reminder time from the routine
// suggestion.
func (i *Interactor) HydrateReminderDefaults(ctx context.Context) (insightsdto.HydrateOutput, error) {
	days, settings, err := i.state.View(ctx)
	if err != nil {
		return insightsdto.HydrateOutput{}, err
	}
	if strings.TrimSpace(settings.ReminderTime) != "" {
		return insightsdto.HydrateOutput{ReminderTime: settings.ReminderTime}, nil
	}
	now := i.svc.Now()
	suggestion := domain.SuggestRoutine(days, calendar.Key(now), now.Location())
	updated, warning, err := i.state.UpdateSettings(ctx, func(s *planner.Settings) bool {
		if s.ReminderTime != "" {
			return false
		}
		s.ReminderTime = suggestion.Time
		return true
	})
	if err != nil {
		return insightsdto.HydrateOutput{}, err
	}
	return insightsdto.HydrateOutput{ReminderTime: updated.ReminderTime, Changed: true, Warning: warning}, nil
}
