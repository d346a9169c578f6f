package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"compass/internal/modules/planner/domain"
	plannerout "compass/internal/modules/planner/port/out"
	"compass/internal/platform/calendar"
	"compass/internal/platform/markdown"
)

const (
	dayBlockStart = "<!-- compass:day:start -->"
	dayBlockEnd   = "<!-- compass:day:end -->"
)

// VaultJournalWriter writes one markdown note per day. Frontmatter and the
// managed block are regenerated on every export; anything the user wrote
// outside the block survives.
type VaultJournalWriter struct {
	root string
}

func NewVaultJournalWriter(root string) plannerout.JournalWriter {
	return &VaultJournalWriter{root: root}
}

func (w *VaultJournalWriter) WriteDay(_ context.Context, entry domain.JournalEntry) (string, error) {
	date, err := calendar.ParseKey(entry.Date, time.UTC)
	if err != nil {
		return "", err
	}
	dir := filepath.Join(w.root, date.Format("2006"), date.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, date.Format("02")+".md")

	body := ""
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		_, body, err = markdown.SplitFrontmatter(string(existing))
		if err != nil {
			return "", fmt.Errorf("parse journal note %s: %w", path, err)
		}
	case os.IsNotExist(err):
		body = fmt.Sprintf("# %s\n\n", date.Format("Monday, January 2, 2006"))
	default:
		return "", fmt.Errorf("read journal note: %w", err)
	}

	body = markdown.ReplaceManagedBlock(body, dayBlockStart, dayBlockEnd, renderDayBlock(entry.Day))
	fields := []markdown.Field{
		{Key: "date", Value: entry.Date},
		{Key: "kickoff", Value: entry.Day.Kickoff},
		{Key: "tasks_total", Value: len(entry.Day.Tasks)},
		{Key: "tasks_completed", Value: entry.Day.CompletedCount()},
		{Key: "successful", Value: entry.Successful},
		{Key: "rolled_forward", Value: entry.Day.RolledForward},
	}
	rendered, err := markdown.RenderFrontmatter(fields, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}

func renderDayBlock(day domain.Day) string {
	b := strings.Builder{}
	b.WriteString("## Tasks\n\n")
	if len(day.Tasks) == 0 {
		b.WriteString("_No tasks planned._\n")
	}
	for _, task := range domain.DisplayOrder(day.Tasks, domain.FilterAll) {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s (%s, %d min", mark, task.Text, task.Context, task.Minutes)
		if task.MustDo {
			b.WriteString(", must-do")
		}
		if task.RolledFrom != "" {
			fmt.Fprintf(&b, ", from %s", task.RolledFrom)
		}
		b.WriteString(")\n")
	}

	b.WriteString("\n## Recap\n\n")
	if day.Recap.Summary == "" {
		b.WriteString("_No recap yet._\n")
	} else {
		b.WriteString(day.Recap.Summary + "\n")
	}
	if len(day.Recap.DelayReasons) > 0 {
		b.WriteString("\n### Delays\n\n")
		for _, item := range day.Recap.DelayReasons {
			text := item.TaskID
			if idx, ok := day.FindTask(item.TaskID); ok {
				text = day.Tasks[idx].Text
			}
			fmt.Fprintf(&b, "- %s: %s\n", text, item.Reason)
		}
	}
	return b.String()
}
