package todo

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for persistence events.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the in-memory task collection. Every mutation is written through
// the Persister before the method returns.
type Store struct {
	persister Persister
	tasks     []Task
	nextID    int
	logger    *log.Logger
}

// Open loads the persisted tasks and prepares the id counter.
func Open(p Persister, opts ...StoreOption) (*Store, error) {
	if p == nil {
		return nil, fmt.Errorf("persister is nil")
	}
	s := &Store{
		persister: p,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	s.tasks = tasks
	s.nextID = NextID(tasks)
	s.logger.Debug("tasks loaded", "tasks", len(tasks), "next_id", s.nextID)
	return s, nil
}

// NextID returns one more than the largest id in tasks, or 1 if tasks is empty.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// Add appends a task with the next id and the default status.
func (s *Store) Add(name string, priority Priority) (Task, error) {
	task := Task{
		ID:       s.nextID,
		Name:     name,
		Status:   DefaultStatus,
		Priority: priority,
	}
	s.tasks = append(s.tasks, task)
	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return Task{}, err
	}
	s.nextID++
	s.logger.Debug("task added", "id", task.ID, "priority", task.Priority)
	return task, nil
}

// Delete removes the first task with id. It reports false when no task
// matched, in which case nothing is written.
func (s *Store) Delete(id int) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	prev := s.tasks
	next := make([]Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	s.tasks = next
	if err := s.save(); err != nil {
		s.tasks = prev
		return false, err
	}
	s.logger.Debug("task deleted", "id", id)
	return true, nil
}

// Rename replaces the name of the task with id.
func (s *Store) Rename(id int, name string) (bool, error) {
	return s.update(id, func(t *Task) { t.Name = name })
}

// SetStatus replaces the status of the task with id. Any string is accepted.
func (s *Store) SetStatus(id int, status string) (bool, error) {
	return s.update(id, func(t *Task) { t.Status = status })
}

// Get returns the task with id.
func (s *Store) Get(id int) (Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.tasks[idx], true
}

// Tasks returns a copy of the tasks in stored order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// SortedByPriority returns the tasks ordered by descending priority rank,
// keeping insertion order among equal ranks.
func (s *Store) SortedByPriority() []Task {
	return SortByPriority(s.tasks)
}

// List returns the display order of the tasks. It never writes.
func (s *Store) List() []Task {
	return s.SortedByPriority()
}

// SortByPriority returns a stably sorted copy of tasks, highest rank first.
func SortByPriority(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
	})
	return sorted
}

func (s *Store) update(id int, updater func(*Task)) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}

	prev := s.tasks[idx]
	updater(&s.tasks[idx])
	if err := s.save(); err != nil {
		s.tasks[idx] = prev
		return false, err
	}
	s.logger.Debug("task updated", "id", id)
	return true, nil
}

func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) save() error {
	if err := s.persister.Save(s.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	s.logger.Debug("tasks saved", "tasks", len(s.tasks))
	return nil
}
