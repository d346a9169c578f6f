package domain

// SuccessThreshold is the completion ratio a day without must-dos needs.
const SuccessThreshold = 0.7

// Successful applies the day success rule. A day with no tasks never
// succeeds. When any must-do exists, only must-dos count and all of them
// must be done; otherwise at least SuccessThreshold of tasks must be done.
func (d Day) Successful() bool {
	if len(d.Tasks) == 0 {
		return false
	}
	mustTotal, mustDone := 0, 0
	for _, task := range d.Tasks {
		if !task.MustDo {
			continue
		}
		mustTotal++
		if task.Completed {
			mustDone++
		}
	}
	if mustTotal > 0 {
		return mustDone == mustTotal
	}
	return float64(d.CompletedCount())/float64(len(d.Tasks)) >= SuccessThreshold
}

// JournalEntry is what gets written when a day is exported.
type JournalEntry struct {
	Date       string
	Day        Day
	Successful bool
}
