package domain

import (
	"time"

	"compass/internal/platform/calendar"
)

// Stamp supplies identity and time to operations that create tasks.
type Stamp struct {
	NewID func() string
	Now   time.Time
}

type RolloverReport struct {
	From         string
	To           string
	DaysWalked   int
	TasksCarried int
	FirstRun     bool
}

// CopyPendingTasks appends every unfinished task of fromKey to toKey unless
// its carry chain is already represented there. It returns the number of
// tasks copied; a second call for the same pair copies nothing.
func CopyPendingTasks(days Days, fromKey, toKey string, stamp Stamp) int {
	fromDay := days.EnsureDay(fromKey)
	toDay := days.EnsureDay(toKey)

	carried := make(map[string]struct{}, len(toDay.Tasks))
	for _, task := range toDay.Tasks {
		carried[task.CarrySourceID] = struct{}{}
	}

	moved := 0
	for _, task := range fromDay.PendingTasks() {
		carryID := task.CarryID()
		if _, ok := carried[carryID]; ok {
			continue
		}
		toDay.Tasks = append(toDay.Tasks, Task{
			ID:            stamp.NewID(),
			Text:          task.Text,
			Context:       ParseContext(string(task.Context)),
			MustDo:        task.MustDo,
			Minutes:       NormalizeMinutes(float64(task.Minutes)),
			CreatedAt:     stamp.Now,
			RolledFrom:    fromKey,
			CarrySourceID: carryID,
			Source:        SourceRollover,
		})
		carried[carryID] = struct{}{}
		moved++
	}
	return moved
}

// RunRollover catches the store up from Settings.LastOpenedDate to today one
// day at a time. Each walked day is latched with RolledForward so replays
// never carry its tasks again.
func RunRollover(state *State, today string, stamp Stamp) RolloverReport {
	last := state.Settings.LastOpenedDate
	report := RolloverReport{From: last, To: today}

	if last == "" || !calendar.IsValidKey(last) {
		state.Settings.LastOpenedDate = today
		state.Days.EnsureDay(today)
		report.FirstRun = true
		return report
	}
	if last >= today {
		state.Settings.LastOpenedDate = today
		state.Days.EnsureDay(today)
		return report
	}

	for cursor := last; cursor < today; {
		next, err := calendar.Shift(cursor, 1)
		if err != nil {
			break
		}
		state.Days.EnsureDay(next)
		day := state.Days.EnsureDay(cursor)
		if !day.RolledForward {
			report.TasksCarried += CopyPendingTasks(state.Days, cursor, next, stamp)
			day.RolledForward = true
		}
		report.DaysWalked++
		cursor = next
	}
	state.Settings.LastOpenedDate = today
	return report
}
