package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// doctorCommand checks config and task file validity.
func (r *runner) doctorCommand() error {
	cfg := r.cfg.Config
	w := r.stdout

	fmt.Fprintln(w, "Tasklist Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Check config
	fmt.Fprintln(w, "Config:")
	if len(r.cfg.Files) == 0 {
		fmt.Fprintln(w, "  ✅ Files: none (using defaults)")
	}
	for _, f := range r.cfg.Files {
		fmt.Fprintf(w, "  ✅ File: %s\n", f)
	}
	if logging.ValidLevel(cfg.LogLevel) {
		fmt.Fprintf(w, "  ✅ Log level: %s\n", cfg.LogLevel)
	} else {
		fmt.Fprintf(w, "  ❌ Log level: %s (expected debug|info|warn|error)\n", cfg.LogLevel)
		allOK = false
	}
	if logging.ValidFormat(cfg.LogFormat) {
		fmt.Fprintf(w, "  ✅ Log format: %s\n", cfg.LogFormat)
	} else {
		fmt.Fprintf(w, "  ❌ Log format: %s (expected text|json|logfmt)\n", cfg.LogFormat)
		allOK = false
	}
	fmt.Fprintf(w, "  ✅ Time format: %s (now %s)\n", cfg.TimeFormat, r.now().Format(cfg.TimeFormat))
	fmt.Fprintln(w)

	// Check task file
	fmt.Fprintf(w, "Task file: %s\n", cfg.TasksFile)
	info, err := os.Stat(cfg.TasksFile)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first add)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		if !r.checkTaskFile(cfg.TasksFile) {
			allOK = false
		}
	}
	fmt.Fprintln(w)

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskFile validates an existing task file and prints the findings.
func (r *runner) checkTaskFile(path string) bool {
	w := r.stdout
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")

	result := todo.Validate(data)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	tasks, err := todo.Decode(data)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  Tasks: %d (next id %d)\n", len(tasks), todo.NextID(tasks))
	return true
}

// configCommand prints the effective configuration and where each value
// came from. With the "example" argument it prints a sample config file.
func (r *runner) configCommand(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if len(args) == 1 {
		if args[0] != "example" {
			return fmt.Errorf("unknown config subcommand: %s", args[0])
		}
		fmt.Fprint(r.stdout, config.ExampleConfig())
		return nil
	}

	for _, field := range r.cfg.Fields() {
		fmt.Fprintf(r.stdout, "%-15s = %-30v (%s)\n", field, r.cfg.Value(field), r.cfg.SourceOf(field))
	}
	return nil
}

// tuiCommand launches the TUI on the configured task file.
func (r *runner) tuiCommand(ctx context.Context) error {
	cfg := r.cfg.Config
	fileStore := &todo.FileStore{Path: cfg.TasksFile, Strict: cfg.SchemaStrict}
	return ui.RunTUI(ctx, fileStore, cfg.TasksFile, ui.WithRefreshInterval(cfg.TUIRefresh))
}
