package week

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plannerdto "compass/internal/modules/planner/dto"
	"compass/internal/ui/theme"
)

type WeekPort interface {
	Week(ctx context.Context, date string) (plannerdto.WeekPlanOutput, error)
}

type LoadedMsg struct {
	Week plannerdto.WeekPlanOutput
	Err  error
}

type Model struct {
	port   WeekPort
	week   plannerdto.WeekPlanOutput
	err    error
	width  int
	height int
}

func New(port WeekPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("planner is not configured")}
		}
		week, err := port.Week(context.Background(), "")
		return LoadedMsg{Week: week, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.week, m.err = msg.Week, msg.Err
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Warn.Render("week: " + m.err.Error())
	}
	if len(m.week.Days) == 0 {
		return theme.Muted.Render("Loading week…")
	}
	cells := make([]string, 0, len(m.week.Days))
	for _, day := range m.week.Days {
		label := day.Weekday.String()[:3]
		style := theme.Pane
		if day.IsToday {
			style = theme.PaneActive
			label = theme.Hot.Render(label)
		}
		body := fmt.Sprintf("%s\n%s\n\n%d planned\n%s", label, theme.Muted.Render(day.Date[5:]), day.Planned, theme.Done.Render(fmt.Sprintf("%d done", day.Completed)))
		cells = append(cells, style.Width(12).Render(body))
	}
	title := theme.Title.Render(fmt.Sprintf("Week %s – %s", m.week.Start, m.week.End))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", lipgloss.JoinHorizontal(lipgloss.Top, cells...), "",
		theme.Muted.Render(strings.Repeat("─", max(m.width-4, 1))))
}
