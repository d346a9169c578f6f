package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	insightsdto "compass/internal/modules/insights/dto"
	plannerdto "compass/internal/modules/planner/dto"
	"compass/internal/ui/components"
	"compass/internal/ui/theme"
	insightsview "compass/internal/ui/views/insights"
	tasksview "compass/internal/ui/views/tasks"
	weekview "compass/internal/ui/views/week"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type plannerPort interface {
	tasksview.TasksPort
	weekview.WeekPort
	Open(ctx context.Context) (plannerdto.OpenOutput, error)
	Add(ctx context.Context, input plannerdto.AddTaskInput) (plannerdto.TaskMutationOutput, error)
	Complete(ctx context.Context, date, taskID string, completed bool) (plannerdto.TaskMutationOutput, error)
	Edit(ctx context.Context, date, taskID, text string) (plannerdto.TaskMutationOutput, error)
	Delete(ctx context.Context, date, taskID string) (plannerdto.DeleteTaskOutput, error)
	Kickoff(ctx context.Context, date, kickoff string) (plannerdto.DayOutput, error)
	RecapSummary(ctx context.Context, date, summary string) (plannerdto.DayOutput, error)
	DelayReason(ctx context.Context, date, taskID, reason string) (plannerdto.DayOutput, error)
	Roll(ctx context.Context, from, to string) (plannerdto.RollOutput, error)
	Export(ctx context.Context, date string) (plannerdto.ExportDayOutput, error)
}

type insightsPort interface {
	insightsview.InsightsPort
	CheckReminder(ctx context.Context) (insightsdto.ReminderOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabWeek
	tabInsights
	tabCount
)

var tabLabels = [tabCount]string{"Today", "Week", "Insights"}

// ─── async messages ───────────────────────────────────────────────────────────

// changedMsg reports the outcome of a mutation; every mutation reloads views.
type changedMsg struct {
	status string
	err    error
}

type reminderTickMsg time.Time

type reminderMsg struct {
	out insightsdto.ReminderOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Filter  key.Binding
	Reload  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle done")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Delete, k.Filter},
		{k.Reload, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// the command palette and the once-a-minute reminder tick. All business logic
// goes through the ports; rendering is delegated to sub-views.
type Model struct {
	planner  plannerPort
	insights insightsPort

	tasksView    tasksview.Model
	weekView     weekview.Model
	insightsView insightsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(planner plannerPort, insights insightsPort) Model {
	return Model{
		planner:      planner,
		insights:     insights,
		tasksView:    tasksview.New(planner),
		weekView:     weekview.New(planner),
		insightsView: insightsview.New(insights),
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tasksView.Init(),
		m.weekView.Init(),
		m.insightsView.Init(),
		m.checkReminderCmd(),
		scheduleReminderTick(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case changedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		return m, m.reloadAll()

	case reminderTickMsg:
		return m, tea.Batch(m.reopenCmd(), m.checkReminderCmd(), scheduleReminderTick())

	case reminderMsg:
		switch {
		case msg.err != nil:
			m.status = "reminder: " + msg.err.Error()
		case msg.out.Message != "":
			m.status = "⏰ " + msg.out.Message
		}
		return m, nil

	case tasksview.LoadedMsg:
		var cmd tea.Cmd
		m.tasksView, cmd = m.tasksView.Update(msg)
		return m, cmd

	case weekview.LoadedMsg:
		var cmd tea.Cmd
		m.weekView, cmd = m.weekView.Update(msg)
		return m, cmd

	case insightsview.LoadedMsg:
		var cmd tea.Cmd
		m.insightsView, cmd = m.insightsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabToday && m.tasksView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "r":
			m.status = "reloaded"
			return m, m.reloadAll()
		case "f":
			if m.activeTab == tabToday {
				cmd := m.tasksView.NextFilter()
				return m, cmd
			}
		case " ", "x":
			if task, ok := m.tasksView.SelectedTask(); ok && m.activeTab == tabToday {
				return m, m.toggleCmd(task)
			}
		case "d":
			if task, ok := m.tasksView.SelectedTask(); ok && m.activeTab == tabToday {
				return m, m.deleteCmd(task)
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.tasksView, tabCmd = m.tasksView.Update(msg)
	case tabWeek:
		m.weekView, tabCmd = m.weekView.Update(msg)
	case tabInsights:
		m.insightsView, tabCmd = m.insightsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) propagateSize() {
	size := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.tasksView, _ = m.tasksView.Update(size)
	m.weekView, _ = m.weekView.Update(size)
	m.insightsView, _ = m.insightsView.Update(size)
}

func (m Model) reloadAll() tea.Cmd {
	return tea.Batch(m.tasksView.Reload(), m.weekView.Reload(), m.insightsView.Reload())
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.tasksView.View()
	case tabWeek:
		return m.weekView.View()
	case tabInsights:
		return m.insightsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	bar := "compass  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	if input == "" {
		return m, nil
	}
	verb, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)
	date := m.tasksView.Date()
	selected, hasSelected := m.tasksView.SelectedTask()

	switch verb {
	case "add", "must":
		mustDo := verb == "must"
		return m, m.mutate(func(ctx context.Context) (string, error) {
			out, err := m.planner.Add(ctx, plannerdto.AddTaskInput{Text: rest, Minutes: 25, MustDo: mustDo, Date: date, Source: "quick"})
			return withWarning("added: "+out.Task.Text, out.Warning), err
		})
	case "kickoff":
		return m, m.mutate(func(ctx context.Context) (string, error) {
			out, err := m.planner.Kickoff(ctx, date, rest)
			return withWarning("kickoff saved", out.Warning), err
		})
	case "recap":
		return m, m.mutate(func(ctx context.Context) (string, error) {
			out, err := m.planner.RecapSummary(ctx, date, rest)
			return withWarning("recap saved", out.Warning), err
		})
	case "delay", "edit":
		if !hasSelected {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.mutate(func(ctx context.Context) (string, error) {
			if verb == "edit" {
				out, err := m.planner.Edit(ctx, date, selected.ID, rest)
				return withWarning("task updated", out.Warning), err
			}
			out, err := m.planner.DelayReason(ctx, date, selected.ID, rest)
			return withWarning("delay reason saved", out.Warning), err
		})
	case "filter":
		cmd := m.tasksView.SetFilter(rest)
		return m, cmd
	case "roll":
		return m, m.mutate(func(ctx context.Context) (string, error) {
			out, err := m.planner.Roll(ctx, date, "")
			return withWarning(fmt.Sprintf("rolled %d task(s) to %s", out.Carried, out.To), out.Warning), err
		})
	case "export":
		return m, m.mutate(func(ctx context.Context) (string, error) {
			out, err := m.planner.Export(ctx, date)
			return "exported " + out.Path, err
		})
	case "remind":
		return m, m.checkReminderCmd()
	default:
		m.status = "unknown command: " + verb
		return m, nil
	}
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) mutate(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		return changedMsg{status: status, err: err}
	}
}

func (m Model) toggleCmd(task plannerdto.TaskOutput) tea.Cmd {
	date := m.tasksView.Date()
	return m.mutate(func(ctx context.Context) (string, error) {
		out, err := m.planner.Complete(ctx, date, task.ID, !task.Completed)
		state := "reopened"
		if out.Task.Completed {
			state = "done"
		}
		return withWarning(state+": "+out.Task.Text, out.Warning), err
	})
}

func (m Model) deleteCmd(task plannerdto.TaskOutput) tea.Cmd {
	date := m.tasksView.Date()
	return m.mutate(func(ctx context.Context) (string, error) {
		out, err := m.planner.Delete(ctx, date, task.ID)
		return withWarning("deleted: "+task.Text, out.Warning), err
	})
}

// reopenCmd re-runs the rollover so a dashboard left open past midnight
// moves to the new day.
func (m Model) reopenCmd() tea.Cmd {
	return m.mutate(func(ctx context.Context) (string, error) {
		out, err := m.planner.Open(ctx)
		if err != nil || out.Rollover.TasksCarried == 0 {
			return withWarning(m.status, out.Warning), err
		}
		return withWarning(fmt.Sprintf("new day: %d task(s) carried forward", out.Rollover.TasksCarried), out.Warning), nil
	})
}

func (m Model) checkReminderCmd() tea.Cmd {
	insights := m.insights
	return func() tea.Msg {
		if insights == nil {
			return reminderMsg{}
		}
		out, err := insights.CheckReminder(context.Background())
		return reminderMsg{out: out, err: err}
	}
}

func scheduleReminderTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return reminderTickMsg(t) })
}

func withWarning(status, warning string) string {
	if warning == "" {
		return status
	}
	return status + " (" + warning + ")"
}
