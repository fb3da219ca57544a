package todo

import (
	"fmt"
)

// SchemaVersion is the task file format version written by Save.
const SchemaVersion = 1

// DefaultStatus is assigned to new tasks and to records loaded without a status.
const DefaultStatus = "Not Done"

// Priority is a task priority label. Labels outside the known set are kept
// verbatim and rank below Low.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the ordering value of the priority label.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Known reports whether p is one of High, Medium, or Low.
func (p Priority) Known() bool {
	return p.Rank() > 0
}

// Task represents a single to-do item.
type Task struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Priority Priority `json:"priority"`
}

func (t Task) String() string {
	return fmt.Sprintf("The task is : %s , priority: %s, status: %s", t.Name, t.Priority, t.Status)
}

// File is the on-disk layout of the task collection.
type File struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`
}

// fileRecord mirrors File for decoding; every field is optional here so that
// missing values can be told apart from zero values.
type fileRecord struct {
	SchemaVersion *int          `json:"schema_version"`
	Tasks         *[]taskRecord `json:"tasks"`
}

// taskRecord is the decoding form of Task. Status may be absent.
type taskRecord struct {
	ID       *int    `json:"id"`
	Name     *string `json:"name"`
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
}

// toTask converts a decoded record, filling in DefaultStatus when the status
// is missing. path is used for error locations.
func (r taskRecord) toTask(path string) (Task, error) {
	if r.ID == nil {
		return Task{}, missingField(path + ".id")
	}
	if *r.ID <= 0 {
		return Task{}, &ValidationError{
			Path: path + ".id",
			Err:  fmt.Errorf("must be a positive integer, got %d", *r.ID),
		}
	}
	if r.Name == nil {
		return Task{}, missingField(path + ".name")
	}
	if r.Priority == nil {
		return Task{}, missingField(path + ".priority")
	}
	status := DefaultStatus
	if r.Status != nil {
		status = *r.Status
	}
	return Task{
		ID:       *r.ID,
		Name:     *r.Name,
		Status:   status,
		Priority: Priority(*r.Priority),
	}, nil
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missingField(path string) *ValidationError {
	return &ValidationError{
		Path: path,
		Err:  fmt.Errorf("missing required field"),
	}
}
