package dto

type StatsOutput struct {
	Today          string
	Streak         int
	BestStreak     int
	Consistency    int
	TodayCompleted int
	TodayTotal     int
	Warning        string
}

type RoutineOutput struct {
	Time         string
	Message      string
	SampleCount  int
	FromFallback bool
}

type ContextMinutesOutput struct {
	Context string
	Minutes int
}

type ContextCountOutput struct {
	Context string
	Count   int
}

type WeeklyOutput struct {
	Start              string
	End                string
	TotalCompleted     int
	MustCompletionRate int
	TopWins            []string
	TopDelayReason     string
	TimeByContext      []ContextMinutesOutput
	DelayByContext     []ContextCountOutput
	BestStreak         int
}

type ReminderOutput struct {
	Today     string
	Due       bool
	Message   string
	Delivered bool
	Warning   string
}

type HydrateOutput struct {
	ReminderTime string
	Changed      bool
	Warning      string
}
