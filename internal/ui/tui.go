// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	refreshInterval time.Duration
}

func newTUIConfig(opts ...TUIOption) *tuiConfig {
	c := &tuiConfig{refreshInterval: 2 * time.Second}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRefreshInterval sets how often the task file is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.refreshInterval = d
		}
	}
}

// RunTUI starts a read-only viewer of the tasks stored by p.
func RunTUI(ctx context.Context, p todo.Persister, label string, opts ...TUIOption) error {
	c := newTUIConfig(opts...)

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(p, label, c.refreshInterval)
	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// viewMode selects between the priority listing and the status listing.
type viewMode int

const (
	viewPriority viewMode = iota
	viewStatuses
)

type tuiModel struct {
	persister    todo.Persister
	label        string
	tasks        []todo.Task
	loadErr      error
	loaded       bool
	tickInterval time.Duration
	filter       todo.Priority // Filter by priority
	mode         viewMode
	showHelp     bool // Show help screen
}

type tickMsg time.Time

func newTUIModel(p todo.Persister, label string, interval time.Duration) *tuiModel {
	return &tuiModel{
		persister:    p,
		label:        label,
		tickInterval: interval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "s":
			if m.mode == viewStatuses {
				m.mode = viewPriority
			} else {
				m.mode = viewStatuses
			}
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = todo.PriorityHigh
		case "2":
			m.filter = todo.PriorityMedium
		case "3":
			m.filter = todo.PriorityLow
		case "0":
			m.filter = ""
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.filter != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Filter: %s (0 to clear)", m.filter)) + "\n\n")
	}

	switch {
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	case !m.loaded:
		b.WriteString("Loading...\n\n")
	case m.mode == viewStatuses:
		writeStatuses(&b, m.visible())
	default:
		writeOverview(&b, m.tasks)
		writeTasks(&b, todo.SortByPriority(m.visible()))
	}

	b.WriteString(mutedStyle.Render("File: "+m.label) + "\n")
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	tasks, err := m.persister.Load()
	if err != nil {
		m.loadErr = err
		m.tasks = nil
		return
	}
	m.loadErr = nil
	m.loaded = true
	m.tasks = tasks
}

// visible returns the tasks passing the priority filter, in stored order.
func (m *tuiModel) visible() []todo.Task {
	if m.filter == "" {
		return m.tasks
	}
	var out []todo.Task
	for _, t := range m.tasks {
		if t.Priority == m.filter {
			out = append(out, t)
		}
	}
	return out
}

func writeTitle(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Task List") + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []todo.Task) {
	counts := map[todo.Priority]int{}
	other := 0
	for _, t := range tasks {
		if t.Priority.Known() {
			counts[t.Priority]++
		} else {
			other++
		}
	}
	b.WriteString(fmt.Sprintf("  High: %d  Medium: %d  Low: %d  Other: %d\n\n",
		counts[todo.PriorityHigh],
		counts[todo.PriorityMedium],
		counts[todo.PriorityLow],
		other,
	))
}

func writeTasks(b *strings.Builder, tasks []todo.Task) {
	if len(tasks) == 0 {
		b.WriteString("  There are no tasks in the list..\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t) + "\n")
	}
	b.WriteString("\n")
}

func writeStatuses(b *strings.Builder, tasks []todo.Task) {
	b.WriteString("Statuses\n\n")
	if len(tasks) == 0 {
		b.WriteString("  There are no tasks in the list..\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(fmt.Sprintf("  %s  %s\n", t.Name, mutedStyle.Render(t.Status)))
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  s            Toggle priority/status view\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by High\n")
	b.WriteString("  2            Filter by Medium\n")
	b.WriteString("  3            Filter by Low\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s", interval)) + "\n")
}

func formatTask(t todo.Task) string {
	return fmt.Sprintf("  [%3d] %s %s  %s",
		t.ID,
		priorityStyle(t.Priority).Render(fmt.Sprintf("%-6s", t.Priority)),
		t.Name,
		mutedStyle.Render(t.Status),
	)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
