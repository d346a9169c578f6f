package domain

import (
	"fmt"
	"sort"
	"time"

	planner "compass/internal/modules/planner/domain"
	"compass/internal/platform/calendar"
)

const (
	RoutineWindow        = 21
	ReminderFallbackTime = "09:00"
	earliestReminder     = 7 * 60
	reminderLead         = 45
)

type RoutineSuggestion struct {
	Time         string
	Message      string
	MedianMinute int
	SampleCount  int
	FromFallback bool
}

// SuggestRoutine derives a reminder time from when tasks were completed over
// the trailing window. Completion times are read in loc.
func SuggestRoutine(days planner.Days, today string, loc *time.Location) RoutineSuggestion {
	if loc == nil {
		loc = time.Local
	}
	keys, err := calendar.LastN(today, RoutineWindow)
	if err != nil {
		return fallbackSuggestion()
	}
	minutes := []int{}
	for _, key := range keys {
		for _, task := range days.Lookup(key).Tasks {
			if task.CompletedAt.IsZero() {
				continue
			}
			minutes = append(minutes, calendar.MinuteOfDay(task.CompletedAt.In(loc)))
		}
	}
	if len(minutes) == 0 {
		return fallbackSuggestion()
	}

	sort.Ints(minutes)
	median := minutes[(len(minutes)-1)/2]
	reminder := median - reminderLead
	if reminder < earliestReminder {
		reminder = earliestReminder
	}
	return RoutineSuggestion{
		Time:         calendar.FormatMinutes(reminder),
		Message:      fmt.Sprintf("You usually finish tasks around %s. Reminder set a little earlier for a gentle nudge.", calendar.FormatMinutes(median)),
		MedianMinute: median,
		SampleCount:  len(minutes),
	}
}

func fallbackSuggestion() RoutineSuggestion {
	return RoutineSuggestion{
		Time:         ReminderFallbackTime,
		Message:      "No routine history yet. A morning reminder at 09:00 is a good start.",
		MedianMinute: -1,
		FromFallback: true,
	}
}
