package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist-go/internal/todo"
)

type stubPersister struct {
	tasks []todo.Task
	err   error
	loads int
}

func (p *stubPersister) Load() ([]todo.Task, error) {
	p.loads++
	if p.err != nil {
		return nil, p.err
	}
	return append([]todo.Task(nil), p.tasks...), nil
}

func (p *stubPersister) Save([]todo.Task) error {
	return errors.New("read-only")
}

func sampleTasks() []todo.Task {
	return []todo.Task{
		{ID: 1, Name: "Clean", Status: "Not Done", Priority: todo.PriorityLow},
		{ID: 2, Name: "Buy milk", Status: "Done", Priority: todo.PriorityHigh},
		{ID: 3, Name: "Call mom", Status: "Not Done", Priority: todo.PriorityMedium},
		{ID: 4, Name: "Someday", Status: "Not Done", Priority: "Whenever"},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *tuiModel, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if _, cmd := m.Update(key(k)); cmd != nil {
			t.Fatalf("key %q returned unexpected command", k)
		}
	}
}

func TestViewSortsByPriority(t *testing.T) {
	m := newTUIModel(&stubPersister{tasks: sampleTasks()}, "tasks.json", time.Second)
	m.Init()

	view := m.View()
	order := []string{"Buy milk", "Call mom", "Clean", "Someday"}
	last := -1
	for _, name := range order {
		idx := strings.Index(view, name)
		if idx < 0 {
			t.Fatalf("view missing %q:\n%s", name, view)
		}
		if idx < last {
			t.Errorf("%q rendered out of priority order:\n%s", name, view)
		}
		last = idx
	}
	if !strings.Contains(view, "High: 1  Medium: 1  Low: 1  Other: 1") {
		t.Errorf("missing overview counts:\n%s", view)
	}
	if !strings.Contains(view, "File: tasks.json") {
		t.Errorf("missing file label:\n%s", view)
	}
}

func TestPriorityFilter(t *testing.T) {
	m := newTUIModel(&stubPersister{tasks: sampleTasks()}, "tasks.json", time.Second)
	m.Init()

	press(t, m, "1")
	view := m.View()
	if !strings.Contains(view, "Buy milk") || strings.Contains(view, "Clean") {
		t.Errorf("High filter not applied:\n%s", view)
	}
	if !strings.Contains(view, "Filter: High") {
		t.Errorf("filter banner missing:\n%s", view)
	}

	press(t, m, "3")
	view = m.View()
	if !strings.Contains(view, "Clean") || strings.Contains(view, "Buy milk") {
		t.Errorf("Low filter not applied:\n%s", view)
	}

	press(t, m, "0")
	if m.filter != "" {
		t.Errorf("filter not cleared: %q", m.filter)
	}
}

func TestStatusView(t *testing.T) {
	m := newTUIModel(&stubPersister{tasks: sampleTasks()}, "tasks.json", time.Second)
	m.Init()

	press(t, m, "s")
	view := m.View()
	if !strings.Contains(view, "Statuses") {
		t.Fatalf("status view not shown:\n%s", view)
	}
	// Stored order, not priority order.
	if strings.Index(view, "Clean") > strings.Index(view, "Buy milk") {
		t.Errorf("status view should keep stored order:\n%s", view)
	}

	press(t, m, "s")
	if m.mode != viewPriority {
		t.Error("second s should return to the priority view")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTUIModel(&stubPersister{}, "tasks.json", time.Second)
	m.Init()

	press(t, m, "h")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	press(t, m, "?")
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not hidden")
	}
}

func TestEmptyAndErrorStates(t *testing.T) {
	p := &stubPersister{}
	m := newTUIModel(p, "tasks.json", time.Second)
	if !strings.Contains(m.View(), "Loading...") {
		t.Errorf("expected loading state before Init:\n%s", m.View())
	}

	m.Init()
	if !strings.Contains(m.View(), "There are no tasks in the list..") {
		t.Errorf("expected empty message:\n%s", m.View())
	}

	p.err = errors.New("parse task file: boom")
	press(t, m, "r")
	view := m.View()
	if !strings.Contains(view, "Error loading task file") || !strings.Contains(view, "boom") {
		t.Errorf("expected load error:\n%s", view)
	}
}

func TestTickRefreshes(t *testing.T) {
	p := &stubPersister{}
	m := newTUIModel(p, "tasks.json", time.Second)
	m.Init()

	p.tasks = sampleTasks()
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if p.loads != 2 {
		t.Errorf("loads = %d, want 2", p.loads)
	}
	if !strings.Contains(m.View(), "Buy milk") {
		t.Error("tick did not pick up new tasks")
	}
}

func TestQuit(t *testing.T) {
	m := newTUIModel(&stubPersister{}, "tasks.json", time.Second)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a terminal")
	}
}

func TestWithRefreshInterval(t *testing.T) {
	if got := newTUIConfig().refreshInterval; got != 2*time.Second {
		t.Errorf("default interval = %v, want 2s", got)
	}
	if got := newTUIConfig(WithRefreshInterval(500 * time.Millisecond)).refreshInterval; got != 500*time.Millisecond {
		t.Errorf("interval = %v, want 500ms", got)
	}
	if got := newTUIConfig(WithRefreshInterval(0)).refreshInterval; got != 2*time.Second {
		t.Errorf("zero interval should keep the default, got %v", got)
	}
}
