package domain

import (
	"strings"

	planner "compass/internal/modules/planner/domain"
	"compass/internal/platform/calendar"
)

const (
	WeeklyWindow = 7
	maxTopWins   = 5
)

type ContextMinutes struct {
	Context planner.Context
	Minutes int
}

type ContextCount struct {
	Context planner.Context
	Count   int
}

type WeeklyAnalysis struct {
	Keys               []string
	TotalCompleted     int
	MustCompletionRate int
	TopWins            []string
	TopDelayReason     string
	TimeByContext      []ContextMinutes
	DelayByContext     []ContextCount
}

// BuildWeeklyAnalysis aggregates the seven days ending today, oldest first.
func BuildWeeklyAnalysis(days planner.Days, today string) WeeklyAnalysis {
	keys, err := calendar.LastN(today, WeeklyWindow)
	if err != nil {
		keys = []string{}
	}
	analysis := WeeklyAnalysis{Keys: keys, TopWins: []string{}}
	minutesByContext := map[planner.Context]int{}
	delaysByContext := map[planner.Context]int{}
	mustTotal, mustDone := 0, 0
	tally := newReasonTally()

	for _, key := range keys {
		day := days.Lookup(key)
		for _, task := range day.Tasks {
			context := planner.ParseContext(string(task.Context))
			if task.Completed {
				analysis.TotalCompleted++
				minutesByContext[context] += planner.NormalizeMinutes(float64(task.Minutes))
			} else {
				delaysByContext[context]++
			}
			if !task.MustDo {
				continue
			}
			mustTotal++
			if task.Completed {
				mustDone++
				if len(analysis.TopWins) < maxTopWins {
					analysis.TopWins = append(analysis.TopWins, task.Text)
				}
			}
		}
		for _, item := range day.Recap.DelayReasons {
			tally.add(strings.ToLower(strings.TrimSpace(item.Reason)))
		}
	}

	if mustTotal > 0 {
		analysis.MustCompletionRate = roundHalfUp(float64(mustDone) / float64(mustTotal) * 100)
	}
	analysis.TopDelayReason = tally.top()
	for _, context := range planner.Contexts {
		analysis.TimeByContext = append(analysis.TimeByContext, ContextMinutes{Context: context, Minutes: minutesByContext[context]})
		analysis.DelayByContext = append(analysis.DelayByContext, ContextCount{Context: context, Count: delaysByContext[context]})
	}
	return analysis
}

// reasonTally counts reasons and remembers first-insertion order so ties go
// to the reason seen first.
type reasonTally struct {
	order  []string
	counts map[string]int
}

func newReasonTally() *reasonTally {
	return &reasonTally{counts: map[string]int{}}
}

func (t *reasonTally) add(reason string) {
	if reason == "" {
		return
	}
	if _, ok := t.counts[reason]; !ok {
		t.order = append(t.order, reason)
	}
	t.counts[reason]++
}

func (t *reasonTally) top() string {
	best, bestCount := "", 0
	for _, reason := range t.order {
		if t.counts[reason] > bestCount {
			best, bestCount = reason, t.counts[reason]
		}
	}
	return best
}
