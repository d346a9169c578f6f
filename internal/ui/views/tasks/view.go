package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plannerdto "compass/internal/modules/planner/dto"
	"compass/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TasksPort interface {
	Day(ctx context.Context, date string) (plannerdto.DayOutput, error)
	List(ctx context.Context, date, filter string) (plannerdto.ListTasksOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Day   plannerdto.DayOutput
	Tasks plannerdto.ListTasksOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task plannerdto.TaskOutput
}

func (i taskItem) Title() string {
	box := "[ ]"
	if i.task.Completed {
		box = "[x]"
	}
	return box + " " + i.task.Text
}

func (i taskItem) Description() string {
	parts := []string{i.task.Context, fmt.Sprintf("%d min", i.task.Minutes)}
	if i.task.MustDo {
		parts = append(parts, "must-do")
	}
	if i.task.RolledFrom != "" {
		parts = append(parts, "from "+i.task.RolledFrom)
	}
	if i.task.DelayReason != "" {
		parts = append(parts, "delayed: "+i.task.DelayReason)
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string { return i.task.Text }

// Filters lists the filter chips in cycling order.
var Filters = []string{"All", "Must-Do", "Home", "Work", "Errands"}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    TasksPort
	list    list.Model
	spinner spinner.Model
	day     plannerdto.DayOutput
	filter  string
	loading bool
	width   int
	height  int
}

func New(port TasksPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Today"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, spinner: sp, filter: Filters[0], loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches today's day record and the filtered, ordered task list.
func (m Model) Reload() tea.Cmd {
	port, filter := m.port, m.filter
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{Err: fmt.Errorf("planner is not configured")}
		}
		ctx := context.Background()
		day, err := port.Day(ctx, "")
		if err != nil {
			return LoadedMsg{Err: err}
		}
		tasks, err := port.List(ctx, day.Date, filter)
		return LoadedMsg{Day: day, Tasks: tasks, Err: err}
	}
}

// NextFilter advances the filter chip and reloads.
func (m *Model) NextFilter() tea.Cmd {
	for i, f := range Filters {
		if f == m.filter {
			m.filter = Filters[(i+1)%len(Filters)]
			return m.Reload()
		}
	}
	m.filter = Filters[0]
	return m.Reload()
}

func (m *Model) SetFilter(filter string) tea.Cmd {
	m.filter = filter
	return m.Reload()
}

func (m Model) Date() string { return m.day.Date }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, max(m.height-3, 1))

	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Today — " + msg.Err.Error()
			return m, nil
		}
		m.day = msg.Day
		m.filter = msg.Tasks.Filter
		m.list.Title = fmt.Sprintf("Today %s  [%s]", msg.Day.Date, m.filter)
		items := make([]list.Item, len(msg.Tasks.Tasks))
		for i, task := range msg.Tasks.Tasks {
			items[i] = taskItem{task: task}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading today…")
	}
	header := theme.Muted.Render("No kickoff yet. Use :kickoff <text>")
	if m.day.Kickoff != "" {
		header = theme.Hot.Render("Focus: ") + m.day.Kickoff
	}
	percent := 0
	if m.day.TotalCount > 0 {
		percent = m.day.CompletedCount * 100 / m.day.TotalCount
	}
	progress := fmt.Sprintf("%s %d/%d done", theme.Bar(percent, 20), m.day.CompletedCount, m.day.TotalCount)
	return lipgloss.JoinVertical(lipgloss.Left, header, progress, "", m.list.View())
}

// SelectedTask returns the highlighted task, if any.
func (m Model) SelectedTask() (plannerdto.TaskOutput, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task, true
	}
	return plannerdto.TaskOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
