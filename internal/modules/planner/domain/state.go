package domain

import "encoding/json"

const (
	SchemaVersion = 1
	StorageKey    = "daily_compass_state_v1"
)

type Settings struct {
	LastOpenedDate       string
	RemindersEnabled     bool
	ReminderTime         string
	LastReminderSentDate string
	BestStreak           int
}

// RatchetBestStreak raises BestStreak to streak and reports whether it changed.
func (s *Settings) RatchetBestStreak(streak int) bool {
	if streak > s.BestStreak {
		s.BestStreak = streak
		return true
	}
	return false
}

// State is the whole persisted aggregate. Notes are carried opaquely.
type State struct {
	Version  int
	Days     Days
	Notes    []json.RawMessage
	Settings Settings
}

func NewState() *State {
	return &State{
		Version: SchemaVersion,
		Days:    Days{},
		Notes:   []json.RawMessage{},
	}
}
