package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	insightsout "compass/internal/modules/insights/adapter/out"
	"compass/internal/modules/insights/service"
	"compass/internal/modules/insights/usecase"
	planner "compass/internal/modules/planner/domain"
	plannerdto "compass/internal/modules/planner/dto"
	plannerservice "compass/internal/modules/planner/service"
	plannerusecase "compass/internal/modules/planner/usecase"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeState struct {
	days     planner.Days
	settings planner.Settings
	updates  int
}

func (f *fakeState) View(context.Context) (planner.Days, planner.Settings, error) {
	return f.days.Clone(), f.settings, nil
}

func (f *fakeState) UpdateSettings(_ context.Context, fn func(*planner.Settings) bool) (planner.Settings, string, error) {
	if fn(&f.settings) {
		f.updates++
	}
	return f.settings, "", nil
}

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, _ string, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

type fixedIDs struct{ n int }

func (f *fixedIDs) New() string {
	f.n++
	return "t_" + string(rune('a'+f.n))
}

func successfulDay() *planner.Day {
	return &planner.Day{Tasks: []planner.Task{{ID: "x", Completed: true, Context: planner.ContextHome, Minutes: 25}}}
}

func TestStatsRatchetsBestStreakOnlyUpward(t *testing.T) {
	t.Parallel()
	state := &fakeState{days: planner.Days{
		"2024-01-01": successfulDay(),
		"2024-01-02": successfulDay(),
		"2024-01-03": successfulDay(),
	}}
	uc := usecase.NewInteractor(service.NewInsightsService(&fakeClock{now: time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)}, nil, nil), state)

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Streak != 3 || stats.BestStreak != 3 || stats.Consistency != 100 || stats.TodayTotal != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	state.days["2024-01-03"] = &planner.Day{Tasks: []planner.Task{{ID: "y", Context: planner.ContextHome, Minutes: 25}}}
	stats, err = uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats again: %v", err)
	}
	if stats.Streak != 0 || stats.BestStreak != 3 || state.updates != 1 {
		t.Fatalf("best streak must not decrease: %+v updates=%d", stats, state.updates)
	}
}

func TestCheckReminderDeliversOnceAndFallsBack(t *testing.T) {
	t.Parallel()
	state := &fakeState{
		days:     planner.Days{"2024-01-10": {Tasks: []planner.Task{{ID: "a", MustDo: true}}}},
		settings: planner.Settings{RemindersEnabled: true, ReminderTime: "08:00"},
	}
	notifier := &recordingNotifier{err: errors.New("no display")}
	clk := &fakeClock{now: time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)}
	uc := usecase.NewInteractor(service.NewInsightsService(clk, notifier, nil), state)

	first, err := uc.CheckReminder(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !first.Due || first.Delivered || first.Message != "1 must-do task still open. A 15-minute sprint can close one." {
		t.Fatalf("unexpected first check %+v", first)
	}
	if state.settings.LastReminderSentDate != "2024-01-10" {
		t.Fatalf("reminder must be marked sent, got %+v", state.settings)
	}

	clk.now = clk.now.Add(time.Minute)
	second, err := uc.CheckReminder(context.Background())
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if second.Due || len(notifier.messages) != 1 {
		t.Fatalf("reminder must fire once per day: %+v sent=%d", second, len(notifier.messages))
	}
}

func TestRoutineAndHydrateReminderDefaults(t *testing.T) {
	t.Parallel()
	state := &fakeState{days: planner.Days{"2024-01-10": {Tasks: []planner.Task{
		{ID: "a", Completed: true, CompletedAt: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)},
		{ID: "b", Completed: true, CompletedAt: time.Date(2024, 1, 10, 8, 20, 0, 0, time.UTC)},
		{ID: "c", Completed: true, CompletedAt: time.Date(2024, 1, 10, 8, 40, 0, 0, time.UTC)},
	}}}}
	uc := usecase.NewInteractor(service.NewInsightsService(&fakeClock{now: time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)}, nil, nil), state)

	routine, err := uc.Routine(context.Background())
	if err != nil || routine.Time != "07:35" || routine.SampleCount != 3 {
		t.Fatalf("routine: %v %+v", err, routine)
	}
	hydrated, err := uc.HydrateReminderDefaults(context.Background())
	if err != nil || !hydrated.Changed || hydrated.ReminderTime != "07:35" {
		t.Fatalf("hydrate: %v %+v", err, hydrated)
	}
	again, err := uc.HydrateReminderDefaults(context.Background())
	if err != nil || again.Changed || again.ReminderTime != "07:35" || state.updates != 1 {
		t.Fatalf("hydrate must keep an existing time: %v %+v", err, again)
	}
}

func TestWeeklyThroughPlannerState(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2024, 1, 7, 18, 0, 0, 0, time.UTC)}
	plannerUC := plannerusecase.NewInteractor(plannerservice.NewPlannerService(clk, &fixedIDs{}, nil, nil, nil))
	ctx := context.Background()
	if _, err := plannerUC.Open(ctx); err != nil {
		t.Fatalf("open planner: %v", err)
	}
	added, err := plannerUC.AddTask(ctx, plannerdto.AddTaskInput{Text: "Ship release", Context: "Work", Minutes: 45, MustDo: true})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := plannerUC.SetCompleted(ctx, plannerdto.SetCompletedInput{TaskID: added.Task.ID, Completed: true}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	uc := usecase.NewInteractor(service.NewInsightsService(clk, insightsout.NewLogNotifier(nil), nil), insightsout.NewPlannerStateAdapter(plannerUC))
	weekly, err := uc.Weekly(ctx)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if weekly.Start != "2024-01-01" || weekly.End != "2024-01-07" || weekly.TotalCompleted != 1 || weekly.MustCompletionRate != 100 {
		t.Fatalf("unexpected weekly %+v", weekly)
	}
	if len(weekly.TopWins) != 1 || weekly.TopWins[0] != "Ship release" {
		t.Fatalf("unexpected wins %v", weekly.TopWins)
	}
	if weekly.TimeByContext[1].Context != "Work" || weekly.TimeByContext[1].Minutes != 45 {
		t.Fatalf("unexpected context minutes %+v", weekly.TimeByContext)
	}

	stats, err := uc.Stats(ctx)
	if err != nil || stats.Streak != 1 {
		t.Fatalf("stats: %v %+v", err, stats)
	}
	settings, err := plannerUC.Settings(ctx)
	if err != nil || settings.BestStreak != 1 {
		t.Fatalf("best streak must be written back to the planner: %v %+v", err, settings)
	}
}
