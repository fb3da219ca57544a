package todo

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// memPersister records every save and can be told to fail.
type memPersister struct {
	tasks   []Task
	saves   int
	loadErr error
	saveErr error
}

func (m *memPersister) Load() ([]Task, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return slices.Clone(m.tasks), nil
}

func (m *memPersister) Save(tasks []Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.tasks = slices.Clone(tasks)
	return nil
}

func openMem(t *testing.T, tasks ...Task) (*Store, *memPersister) {
	t.Helper()
	p := &memPersister{tasks: tasks}
	s, err := Open(p)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s, p
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{"empty", nil, 1},
		{"single", []Task{{ID: 1}}, 2},
		{"gaps", []Task{{ID: 2}, {ID: 9}, {ID: 4}}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.tasks); got != tt.want {
				t.Errorf("NextID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("expected error for nil persister")
	}

	loadErr := errors.New("disk on fire")
	_, err := Open(&memPersister{loadErr: loadErr})
	if !errors.Is(err, loadErr) {
		t.Errorf("expected wrapped load error, got %v", err)
	}
}

func TestStoreAdd(t *testing.T) {
	s, p := openMem(t)

	task, err := s.Add("Buy milk", PriorityHigh)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.ID != 1 {
		t.Errorf("ID: got %d, want 1", task.ID)
	}
	if task.Status != DefaultStatus {
		t.Errorf("Status: got %q, want %q", task.Status, DefaultStatus)
	}
	if p.saves != 1 {
		t.Errorf("saves: got %d, want 1", p.saves)
	}
	if len(p.tasks) != 1 || p.tasks[0] != task {
		t.Errorf("persisted tasks = %+v", p.tasks)
	}
}

func TestStoreIDsNeverReused(t *testing.T) {
	s, _ := openMem(t)

	var ids []int
	add := func(name string) {
		task, err := s.Add(name, PriorityLow)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		ids = append(ids, task.ID)
	}
	del := func(id int) {
		if ok, err := s.Delete(id); err != nil || !ok {
			t.Fatalf("Delete(%d) = %v, %v", id, ok, err)
		}
	}

	add("a")
	add("b")
	del(2)
	add("c")
	del(3)
	del(1)
	add("d")
	add("e")

	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids not strictly increasing: %v", ids)
		}
	}
	if !slices.Equal(ids, []int{1, 2, 3, 4, 5}) {
		t.Errorf("ids = %v", ids)
	}
}

func TestStoreOpenContinuesFromMaxID(t *testing.T) {
	s, _ := openMem(t,
		Task{ID: 4, Name: "a", Priority: PriorityLow, Status: DefaultStatus},
		Task{ID: 2, Name: "b", Priority: PriorityLow, Status: DefaultStatus},
	)
	task, err := s.Add("c", PriorityHigh)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task.ID != 5 {
		t.Errorf("ID: got %d, want 5", task.ID)
	}
}

func TestStoreDelete(t *testing.T) {
	s, p := openMem(t,
		Task{ID: 1, Name: "a", Priority: PriorityLow, Status: DefaultStatus},
		Task{ID: 2, Name: "b", Priority: PriorityHigh, Status: DefaultStatus},
		Task{ID: 3, Name: "c", Priority: PriorityMedium, Status: DefaultStatus},
	)

	ok, err := s.Delete(2)
	if err != nil || !ok {
		t.Fatalf("Delete(2) = %v, %v", ok, err)
	}
	want := []Task{
		{ID: 1, Name: "a", Priority: PriorityLow, Status: DefaultStatus},
		{ID: 3, Name: "c", Priority: PriorityMedium, Status: DefaultStatus},
	}
	if !slices.Equal(s.Tasks(), want) {
		t.Errorf("Tasks() = %+v, want %+v", s.Tasks(), want)
	}
	if !slices.Equal(p.tasks, want) {
		t.Errorf("persisted = %+v, want %+v", p.tasks, want)
	}
}

func TestStoreDeleteMissing(t *testing.T) {
	s, p := openMem(t, Task{ID: 1, Name: "a", Priority: PriorityLow, Status: DefaultStatus})
	before := s.Tasks()

	ok, err := s.Delete(42)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ok {
		t.Error("Delete(42) reported found")
	}
	if p.saves != 0 {
		t.Errorf("saves: got %d, want 0", p.saves)
	}
	if !slices.Equal(s.Tasks(), before) {
		t.Errorf("collection changed: %+v", s.Tasks())
	}
}

func TestStoreRenameAndSetStatus(t *testing.T) {
	s, p := openMem(t, Task{ID: 1, Name: "a", Priority: PriorityLow, Status: DefaultStatus})

	ok, err := s.Rename(1, "renamed")
	if err != nil || !ok {
		t.Fatalf("Rename = %v, %v", ok, err)
	}
	ok, err = s.SetStatus(1, "whatever I like")
	if err != nil || !ok {
		t.Fatalf("SetStatus = %v, %v", ok, err)
	}

	task, found := s.Get(1)
	if !found {
		t.Fatal("Get(1) not found")
	}
	if task.Name != "renamed" || task.Status != "whatever I like" {
		t.Errorf("task = %+v", task)
	}
	if p.saves != 2 {
		t.Errorf("saves: got %d, want 2", p.saves)
	}
	if p.tasks[0] != task {
		t.Errorf("persisted = %+v, want %+v", p.tasks[0], task)
	}

	ok, err = s.Rename(9, "x")
	if err != nil || ok {
		t.Errorf("Rename(9) = %v, %v; want false, nil", ok, err)
	}
	ok, err = s.SetStatus(9, "x")
	if err != nil || ok {
		t.Errorf("SetStatus(9) = %v, %v; want false, nil", ok, err)
	}
	if p.saves != 2 {
		t.Errorf("not-found updates should not save, saves = %d", p.saves)
	}
}

func TestStoreSortedByPriorityStable(t *testing.T) {
	s, _ := openMem(t)
	for _, in := range []struct {
		name     string
		priority Priority
	}{
		{"low", PriorityLow},
		{"high-1", PriorityHigh},
		{"medium", PriorityMedium},
		{"high-2", PriorityHigh},
		{"odd", "Someday"},
	} {
		if _, err := s.Add(in.name, in.priority); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	var names []string
	for _, task := range s.SortedByPriority() {
		names = append(names, task.Name)
	}
	want := []string{"high-1", "high-2", "medium", "low", "odd"}
	if !slices.Equal(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}

	// Stored order untouched
	if s.Tasks()[0].Name != "low" {
		t.Errorf("stored order changed: %+v", s.Tasks())
	}
}

func TestStoreListIsReadOnly(t *testing.T) {
	s, p := openMem(t,
		Task{ID: 1, Name: "a", Priority: PriorityLow, Status: DefaultStatus},
		Task{ID: 2, Name: "b", Priority: PriorityHigh, Status: DefaultStatus},
	)
	before := slices.Clone(p.tasks)

	first := s.List()
	second := s.List()
	if !slices.Equal(first, second) {
		t.Errorf("List not idempotent: %+v vs %+v", first, second)
	}
	if p.saves != 0 {
		t.Errorf("List saved %d times", p.saves)
	}
	if !slices.Equal(p.tasks, before) {
		t.Errorf("persisted order changed: %+v", p.tasks)
	}

	// Mutating the returned slice does not leak into the store.
	first[0].Name = "mutated"
	if task, _ := s.Get(2); task.Name != "b" {
		t.Errorf("List returned an alias of the store: %+v", task)
	}
}

func TestStoreSaveFailureRollsBack(t *testing.T) {
	s, p := openMem(t, Task{ID: 1, Name: "a", Priority: PriorityLow, Status: DefaultStatus})
	p.saveErr = errors.New("read-only")

	if _, err := s.Add("b", PriorityHigh); err == nil {
		t.Error("expected Add error")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if _, err := s.Rename(1, "x"); err == nil {
		t.Error("expected Rename error")
	}
	if task, _ := s.Get(1); task.Name != "a" {
		t.Errorf("rename not rolled back: %+v", task)
	}
	if _, err := s.Delete(1); err == nil {
		t.Error("expected Delete error")
	}
	if s.Len() != 1 {
		t.Errorf("delete not rolled back, Len = %d", s.Len())
	}
}

func TestStoreScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s, err := Open(NewFileStore(path))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	milk, err := s.Add("Buy milk", "High")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if milk.ID != 1 || milk.Status != "Not Done" {
		t.Errorf("milk = %+v", milk)
	}
	clean, err := s.Add("Clean", "Low")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if clean.ID != 2 {
		t.Errorf("clean.ID = %d, want 2", clean.ID)
	}
	if ok, err := s.SetStatus(1, "Done"); err != nil || !ok {
		t.Fatalf("SetStatus = %v, %v", ok, err)
	}

	// Re-open from disk to check the file, not the memory copy.
	reopened, err := Open(NewFileStore(path))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	list := reopened.List()
	if len(list) != 2 {
		t.Fatalf("List len = %d, want 2", len(list))
	}
	if list[0].ID != 1 || list[0].Name != "Buy milk" || list[0].Status != "Done" {
		t.Errorf("list[0] = %+v", list[0])
	}
	if list[1].ID != 2 {
		t.Errorf("list[1] = %+v", list[1])
	}
}

func TestStoreListDoesNotTouchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `{"schema_version": 1, "tasks": [{"id": 1, "name": "a", "priority": "Low"}, {"id": 2, "name": "b", "priority": "High"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(NewFileStore(path))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.List()
	s.List()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Errorf("file rewritten by List:\n%s", data)
	}
}

func TestStoreLogsWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	p := &memPersister{}
	s, err := Open(p, WithLogger(logger))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := s.Add("a", PriorityLow); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !strings.Contains(buf.String(), "task added") {
		t.Errorf("expected debug log, got %q", buf.String())
	}
}
