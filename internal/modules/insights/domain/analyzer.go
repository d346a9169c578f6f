package domain

import (
	"math"

	planner "compass/internal/modules/planner/domain"
	"compass/internal/platform/calendar"
)

const ConsistencyWindow = 14

// IsSuccessfulDay reports whether day met the success rule.
func IsSuccessfulDay(day planner.Day) bool {
	return day.Successful()
}

// ComputeStreak counts consecutive successful days ending today, or ending
// yesterday when today is still open or unsuccessful.
func ComputeStreak(days planner.Days, today string) int {
	key := today
	if current := days.Lookup(key); len(current.Tasks) == 0 || !IsSuccessfulDay(current) {
		previous, err := calendar.Shift(key, -1)
		if err != nil {
			return 0
		}
		key = previous
	}

	streak := 0
	for {
		day := days.Lookup(key)
		if len(day.Tasks) == 0 || !IsSuccessfulDay(day) {
			return streak
		}
		streak++
		previous, err := calendar.Shift(key, -1)
		if err != nil {
			return streak
		}
		key = previous
	}
}

// ComputeConsistencyScore is the completed share of all tasks over the
// trailing window, as a whole percentage.
func ComputeConsistencyScore(days planner.Days, today string, window int) int {
	keys, err := calendar.LastN(today, window)
	if err != nil {
		return 0
	}
	total, completed := 0, 0
	for _, key := range keys {
		day := days.Lookup(key)
		total += len(day.Tasks)
		completed += day.CompletedCount()
	}
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(completed) / float64(total) * 100)
}

type Progress struct {
	Completed int
	Total     int
}

func TodayProgress(days planner.Days, today string) Progress {
	day := days.Lookup(today)
	return Progress{Completed: day.CompletedCount(), Total: len(day.Tasks)}
}

func roundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}
