package usecase

import (
	"compass/internal/modules/planner/domain"
	plannerdto "compass/internal/modules/planner/dto"
)

func toTaskOutput(task domain.Task, delayReason string) plannerdto.TaskOutput {
	return plannerdto.TaskOutput{
		ID:            task.ID,
		Text:          task.Text,
		Context:       string(task.Context),
		MustDo:        task.MustDo,
		Minutes:       task.Minutes,
		Completed:     task.Completed,
		CreatedAt:     task.CreatedAt,
		CompletedAt:   task.CompletedAt,
		RolledFrom:    task.RolledFrom,
		CarrySourceID: task.CarrySourceID,
		Source:        string(task.Source),
		DelayReason:   delayReason,
	}
}

func toDayOutput(key string, day domain.Day, warning string) plannerdto.DayOutput {
	tasks := make([]plannerdto.TaskOutput, 0, len(day.Tasks))
	for _, task := range day.Tasks {
		tasks = append(tasks, toTaskOutput(task, day.Recap.DelayReason(task.ID)))
	}
	reasons := make([]plannerdto.DelayReasonOutput, 0, len(day.Recap.DelayReasons))
	for _, item := range day.Recap.DelayReasons {
		reasons = append(reasons, plannerdto.DelayReasonOutput{TaskID: item.TaskID, Reason: item.Reason})
	}
	return plannerdto.DayOutput{
		Date:           key,
		Kickoff:        day.Kickoff,
		Tasks:          tasks,
		RecapSummary:   day.Recap.Summary,
		DelayReasons:   reasons,
		RolledForward:  day.RolledForward,
		CompletedCount: day.CompletedCount(),
		TotalCount:     len(day.Tasks),
		Warning:        warning,
	}
}

func toSettingsOutput(settings domain.Settings, warning string) plannerdto.SettingsOutput {
	return plannerdto.SettingsOutput{
		LastOpenedDate:       settings.LastOpenedDate,
		RemindersEnabled:     settings.RemindersEnabled,
		ReminderTime:         settings.ReminderTime,
		LastReminderSentDate: settings.LastReminderSentDate,
		BestStreak:           settings.BestStreak,
		Warning:              warning,
	}
}
