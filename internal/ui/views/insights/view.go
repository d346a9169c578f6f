package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightsdto "compass/internal/modules/insights/dto"
	"compass/internal/ui/theme"
)

type InsightsPort interface {
	Stats(ctx context.Context) (insightsdto.StatsOutput, error)
	Weekly(ctx context.Context) (insightsdto.WeeklyOutput, error)
	Routine(ctx context.Context) (insightsdto.RoutineOutput, error)
}

type LoadedMsg struct {
	Stats   insightsdto.StatsOutput
	Weekly  insightsdto.WeeklyOutput
	Routine insightsdto.RoutineOutput
	Err     error
}

type Model struct {
	port     InsightsPort
	viewport viewport.Model
	err      error
	width    int
	height   int
}

func New(port InsightsPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	return Model{port: port, viewport: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("insights are not configured")}
		}
		ctx := context.Background()
		stats, err := port.Stats(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		weekly, err := port.Weekly(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		routine, err := port.Routine(ctx)
		return LoadedMsg{Stats: stats, Weekly: weekly, Routine: routine, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-1, 1)
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.viewport.SetContent(Render(msg.Stats, msg.Weekly, msg.Routine))
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Warn.Render("insights: " + m.err.Error())
	}
	return m.viewport.View()
}

// Render formats the analytics report; the CLI uses it for `compass week`.
func Render(stats insightsdto.StatsOutput, weekly insightsdto.WeeklyOutput, routine insightsdto.RoutineOutput) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Momentum") + "\n")
	fmt.Fprintf(&b, "  Streak       %s (best %d)\n", theme.Hot.Render(fmt.Sprintf("%d day%s", stats.Streak, plural(stats.Streak))), stats.BestStreak)
	fmt.Fprintf(&b, "  Consistency  %s %d%%\n", theme.Bar(stats.Consistency, 20), stats.Consistency)
	fmt.Fprintf(&b, "  Today        %d / %d\n\n", stats.TodayCompleted, stats.TodayTotal)

	b.WriteString(theme.Title.Render(fmt.Sprintf("Week %s – %s", weekly.Start, weekly.End)) + "\n")
	fmt.Fprintf(&b, "  Completed    %d\n", weekly.TotalCompleted)
	fmt.Fprintf(&b, "  Must-do rate %s %d%%\n", theme.Bar(weekly.MustCompletionRate, 20), weekly.MustCompletionRate)
	reason := weekly.TopDelayReason
	if reason == "" {
		reason = "No clear delay pattern yet"
	}
	fmt.Fprintf(&b, "  Top delay    %s\n\n", reason)

	b.WriteString(theme.Title.Render("Top wins") + "\n")
	if len(weekly.TopWins) == 0 {
		b.WriteString(theme.Muted.Render("  Complete must-do tasks this week to surface top wins.") + "\n")
	}
	for _, win := range weekly.TopWins {
		b.WriteString("  " + theme.Done.Render("✓ ") + win + "\n")
	}

	b.WriteString("\n" + theme.Title.Render("By context") + "\n")
	for i, item := range weekly.TimeByContext {
		delayed := 0
		if i < len(weekly.DelayByContext) {
			delayed = weekly.DelayByContext[i].Count
		}
		fmt.Fprintf(&b, "  %-8s %4d min done  %2d open\n", item.Context, item.Minutes, delayed)
	}

	b.WriteString("\n" + theme.Title.Render("Routine") + "\n")
	fmt.Fprintf(&b, "  Suggested reminder %s\n  %s\n", theme.Hot.Render(routine.Time), theme.Muted.Render(routine.Message))
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
