package dto

import "time"

type RolloverOutput struct {
	From         string
	To           string
	DaysWalked   int
	TasksCarried int
	FirstRun     bool
}

type OpenOutput struct {
	Today    string
	Rollover RolloverOutput
	Warning  string
}

type TaskOutput struct {
	ID            string
	Text          string
	Context       string
	MustDo        bool
	Minutes       int
	Completed     bool
	CreatedAt     time.Time
	CompletedAt   time.Time
	RolledFrom    string
	CarrySourceID string
	Source        string
	DelayReason   string
}

type DelayReasonOutput struct {
	TaskID string
	Reason string
}

type DayInput struct {
	Date string
}

type DayOutput struct {
	Date           string
	Kickoff        string
	Tasks          []TaskOutput
	RecapSummary   string
	DelayReasons   []DelayReasonOutput
	RolledForward  bool
	CompletedCount int
	TotalCount     int
	Warning        string
}

type AddTaskInput struct {
	Text    string
	Context string
	Minutes float64
	MustDo  bool
	Date    string
	Source  string
}

type TaskMutationOutput struct {
	Date    string
	Task    TaskOutput
	Warning string
}

type SetCompletedInput struct {
	Date      string
	TaskID    string
	Completed bool
}

type EditTaskInput struct {
	Date   string
	TaskID string
	Text   string
}

type DeleteTaskInput struct {
	Date   string
	TaskID string
}

type DeleteTaskOutput struct {
	Date    string
	TaskID  string
	Warning string
}

type SetKickoffInput struct {
	Date    string
	Kickoff string
}

type SetRecapSummaryInput struct {
	Date    string
	Summary string
}

type SetDelayReasonInput struct {
	Date   string
	TaskID string
	Reason string
}

type RollInput struct {
	From string
	To   string
}

type RollOutput struct {
	From    string
	To      string
	Carried int
	Warning string
}

type ListTasksInput struct {
	Date   string
	Filter string
}

type ListTasksOutput struct {
	Date   string
	Filter string
	Tasks  []TaskOutput
}

type WeekPlanInput struct {
	Date string
}

type WeekPlanDay struct {
	Date      string
	Weekday   time.Weekday
	Planned   int
	Completed int
	Selected  bool
	IsToday   bool
}

type WeekPlanOutput struct {
	Start string
	End   string
	Days  []WeekPlanDay
}

type SettingsOutput struct {
	LastOpenedDate       string
	RemindersEnabled     bool
	ReminderTime         string
	LastReminderSentDate string
	BestStreak           int
	Warning              string
}

// SetReminderInput leaves a field untouched when it is nil or empty.
type SetReminderInput struct {
	Enabled *bool
	Time    string
}

type ExportDayInput struct {
	Date string
}

type ExportDayOutput struct {
	Date string
	Path string
}
