package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Persister loads and saves the whole task collection.
type Persister interface {
	Load() ([]Task, error)
	Save(tasks []Task) error
}

// FileStore persists tasks to a single JSON file.
type FileStore struct {
	Path string
	// Strict runs JSON Schema validation before decoding.
	Strict bool
}

// NewFileStore returns a FileStore for path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the task file. A missing file yields an empty collection.
func (s *FileStore) Load() ([]Task, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Task{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	if s.Strict {
		result := Validate(data)
		if !result.Valid {
			return nil, fmt.Errorf("validate task file: %w", errors.Join(result.Errors...))
		}
	}

	tasks, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return tasks, nil
}

// Save writes tasks to a temp file next to Path and renames it into place.
func (s *FileStore) Save(tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		cleanup()
		return fmt.Errorf("chmod task file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		cleanup()
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

// Encode renders tasks in the task file format with 2-space indentation.
func Encode(tasks []Task) ([]byte, error) {
	f := File{
		SchemaVersion: SchemaVersion,
		Tasks:         tasks,
	}
	if f.Tasks == nil {
		f.Tasks = []Task{}
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	return append(data, '\n'), nil
}

// Decode parses task file contents. Only the status field may be missing
// from a record. Ids must be positive and unique.
func Decode(data []byte) ([]Task, error) {
	tasks, err := decodeTasks(data)
	if err != nil {
		return nil, err
	}
	if errs := duplicateIDErrors(tasks); len(errs) > 0 {
		return nil, errs[0]
	}
	return tasks, nil
}

// duplicateIDErrors reports every task whose id was already used by an
// earlier task.
func duplicateIDErrors(tasks []Task) []error {
	var errs []error
	seen := make(map[int]int, len(tasks))
	for i, task := range tasks {
		if first, ok := seen[task.ID]; ok {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("tasks[%d].id", i),
				Err:  fmt.Errorf("duplicate id %d (first used by tasks[%d])", task.ID, first),
			})
			continue
		}
		seen[task.ID] = i
	}
	return errs
}

func decodeTasks(data []byte) ([]Task, error) {
	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	if rec.SchemaVersion != nil && *rec.SchemaVersion != SchemaVersion {
		return nil, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected %d, got %d", SchemaVersion, *rec.SchemaVersion),
		}
	}
	if rec.Tasks == nil {
		return nil, missingField("tasks")
	}

	tasks := make([]Task, 0, len(*rec.Tasks))
	for i, r := range *rec.Tasks {
		task, err := r.toTask(fmt.Sprintf("tasks[%d]", i))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
