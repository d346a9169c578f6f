package domain_test

import (
	"testing"
	"time"

	"compass/internal/modules/insights/domain"
	planner "compass/internal/modules/planner/domain"
)

func TestBuildWeeklyAnalysisZeroFillsContexts(t *testing.T) {
	t.Parallel()
	analysis := domain.BuildWeeklyAnalysis(planner.Days{}, "2024-01-07")
	if len(analysis.Keys) != 7 || analysis.Keys[0] != "2024-01-01" || analysis.Keys[6] != "2024-01-07" {
		t.Fatalf("unexpected window %v", analysis.Keys)
	}
	if len(analysis.TimeByContext) != 3 || len(analysis.DelayByContext) != 3 {
		t.Fatalf("contexts must always be listed: %+v %+v", analysis.TimeByContext, analysis.DelayByContext)
	}
	for i, context := range planner.Contexts {
		if analysis.TimeByContext[i].Context != context || analysis.TimeByContext[i].Minutes != 0 || analysis.DelayByContext[i].Count != 0 {
			t.Fatalf("context %s not zero-filled", context)
		}
	}
	if analysis.MustCompletionRate != 0 || analysis.TopDelayReason != "" || len(analysis.TopWins) != 0 {
		t.Fatalf("unexpected empty analysis %+v", analysis)
	}
}

func TestBuildWeeklyAnalysisAggregates(t *testing.T) {
	t.Parallel()
	days := planner.Days{
		"2024-01-01": {
			Tasks: []planner.Task{
				{ID: "a", Text: "Ship", MustDo: true, Completed: true, Context: planner.ContextWork, Minutes: 60},
				{ID: "b", Text: "Call", MustDo: true, Context: planner.ContextWork, Minutes: 15},
			},
			Recap: planner.Recap{DelayReasons: []planner.DelayReason{{TaskID: "b", Reason: " Meetings "}, {TaskID: "x", Reason: "tired"}}},
		},
		"2024-01-03": {
			Tasks: []planner.Task{
				{ID: "c", Text: "Laundry", Completed: true, Context: planner.ContextHome, Minutes: 30},
				{ID: "d", Text: "Post office", Context: planner.ContextErrands, Minutes: 20},
			},
			Recap: planner.Recap{DelayReasons: []planner.DelayReason{{TaskID: "d", Reason: "TIRED"}, {TaskID: "e", Reason: "  "}}},
		},
		"2023-12-31": {Tasks: []planner.Task{{ID: "old", Text: "Old win", MustDo: true, Completed: true, Context: planner.ContextWork, Minutes: 90}}},
	}
	analysis := domain.BuildWeeklyAnalysis(days, "2024-01-07")
	if analysis.TotalCompleted != 2 || analysis.MustCompletionRate != 50 {
		t.Fatalf("unexpected totals %+v", analysis)
	}
	if len(analysis.TopWins) != 1 || analysis.TopWins[0] != "Ship" {
		t.Fatalf("unexpected wins %v", analysis.TopWins)
	}
	if analysis.TopDelayReason != "tired" {
		t.Fatalf("expected tired, got %q", analysis.TopDelayReason)
	}
	want := map[planner.Context][2]int{planner.ContextHome: {30, 0}, planner.ContextWork: {60, 1}, planner.ContextErrands: {0, 1}}
	for i, context := range planner.Contexts {
		if analysis.TimeByContext[i].Minutes != want[context][0] || analysis.DelayByContext[i].Count != want[context][1] {
			t.Fatalf("%s: unexpected minutes/delays %+v %+v", context, analysis.TimeByContext[i], analysis.DelayByContext[i])
		}
	}
	if _, ok := days["2024-01-05"]; ok {
		t.Fatalf("weekly analysis must not materialize days")
	}
}

func TestTopDelayReasonTieGoesToFirstSeen(t *testing.T) {
	t.Parallel()
	days := planner.Days{
		"2024-01-06": {Recap: planner.Recap{DelayReasons: []planner.DelayReason{{TaskID: "a", Reason: "traffic"}, {TaskID: "b", Reason: "rain"}}}},
		"2024-01-07": {Recap: planner.Recap{DelayReasons: []planner.DelayReason{{TaskID: "c", Reason: "rain"}, {TaskID: "d", Reason: "traffic"}}}},
	}
	if got := domain.BuildWeeklyAnalysis(days, "2024-01-07").TopDelayReason; got != "traffic" {
		t.Fatalf("expected first-seen reason on tie, got %q", got)
	}
}

func TestTopWinsCapsAtFive(t *testing.T) {
	t.Parallel()
	day := &planner.Day{}
	for _, text := range []string{"1", "2", "3", "4", "5", "6"} {
		day.Tasks = append(day.Tasks, planner.Task{Text: text, MustDo: true, Completed: true, Context: planner.ContextHome, Minutes: 25, CompletedAt: time.Now()})
	}
	analysis := domain.BuildWeeklyAnalysis(planner.Days{"2024-01-07": day}, "2024-01-07")
	if len(analysis.TopWins) != 5 || analysis.TopWins[4] != "5" || analysis.MustCompletionRate != 100 {
		t.Fatalf("unexpected wins %v rate %d", analysis.TopWins, analysis.MustCompletionRate)
	}
}
