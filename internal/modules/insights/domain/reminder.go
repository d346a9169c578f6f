package domain

import (
	"fmt"
	"time"

	planner "compass/internal/modules/planner/domain"
	"compass/internal/platform/calendar"
)

// ReminderDecision is the outcome of one reminder check. MarkSent means
// Settings.LastReminderSentDate must be set to Today; Message is empty when
// nothing needs to be shown.
type ReminderDecision struct {
	Today    string
	Due      bool
	MarkSent bool
	Message  string
}

// CheckReminder decides whether the once-a-day nudge fires at now.
func CheckReminder(days planner.Days, settings planner.Settings, now time.Time) ReminderDecision {
	today := calendar.Key(now)
	decision := ReminderDecision{Today: today}
	if !settings.RemindersEnabled {
		return decision
	}
	target := settings.ReminderTime
	if target == "" {
		target = ReminderFallbackTime
	}
	targetMinute, err := calendar.ParseTimeOfDay(target)
	if err != nil {
		return decision
	}
	if calendar.MinuteOfDay(now) < targetMinute || settings.LastReminderSentDate == today {
		return decision
	}

	decision.Due = true
	decision.MarkSent = true
	pending := days.Lookup(today).PendingTasks()
	if len(pending) == 0 {
		return decision
	}
	mustPending := 0
	for _, task := range pending {
		if task.MustDo {
			mustPending++
		}
	}
	if mustPending > 0 {
		decision.Message = fmt.Sprintf("%d must-do %s still open. A 15-minute sprint can close one.", mustPending, plural(mustPending, "task"))
	} else {
		decision.Message = fmt.Sprintf("%d %s still pending. A quick check-in now will help.", len(pending), plural(len(pending), "task"))
	}
	return decision
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
