// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Input holds the task arguments of a single invocation.
type Input struct {
	Command      string
	Task         string
	TaskID       int
	NewName      string
	Priority     string
	Status       string
	ShowStatuses bool
	DeleteTask   bool
}

// bindInputFlags defines the task flags on fs, writing into in.
func bindInputFlags(fs *flag.FlagSet, in *Input) {
	fs.StringVar(&in.Command, "command", in.Command, "Command to run (alternative to the positional command)")
	fs.StringVar(&in.Task, "task", in.Task, "Task name (add)")
	fs.IntVar(&in.TaskID, "taskID", in.TaskID, "Task ID (modify_name, modify_status, delete_task)")
	fs.StringVar(&in.NewName, "new_name", in.NewName, "New task name (modify_name)")
	fs.StringVar(&in.Priority, "priority", in.Priority, "Task priority: High, Medium or Low (add)")
	fs.StringVar(&in.Status, "status", in.Status, "New task status (modify_status)")
	fs.BoolVar(&in.ShowStatuses, "show_statuses", in.ShowStatuses, "Show the status of every task")
	fs.BoolVar(&in.DeleteTask, "delete_task", in.DeleteTask, "Delete the task given by -taskID")
}

// runner carries the output streams and clock of one invocation.
type runner struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	cfg    *config.ConfigWithSources
	in     Input
	logger *log.Logger
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	r := &runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		now:    time.Now,
	}
	return r.run(ctx, args)
}

func (r *runner) run(ctx context.Context, args []string) error {
	r.in = Input{}

	// A leading positional argument is the command; everything after it may
	// be global or task flags.
	var positional string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		positional = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		printUsage(fs, r.stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")
	bindInputFlags(fs, &r.in)

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	r.cfg = cws
	r.logger = logging.NewFromConfig(r.stderr, cws.Config.LogLevel, cws.Config.LogFormat,
		cws.Config.LogTimestamps, cws.Config.LogCaller)

	if *help {
		printUsage(fs, r.stdout)
		return nil
	}
	if *showVersion {
		return r.versionCommand()
	}

	// Flags may precede the command: tasklist -file x add -task y. Move the
	// command to the front and load again so every flag after it is parsed
	// by the same layering.
	remaining := fs.Args()
	if positional == "" && len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		head := args[:len(args)-len(remaining)]
		hoisted := make([]string, 0, len(args))
		hoisted = append(hoisted, remaining[0])
		hoisted = append(hoisted, head...)
		hoisted = append(hoisted, remaining[1:]...)
		return r.run(ctx, hoisted)
	}

	command, err := r.resolveCommand(positional)
	if err != nil {
		return err
	}
	r.logger.Debug("dispatching command", "command", command, "file", cws.Config.TasksFile)

	switch command {
	case "":
		printUsage(fs, r.stdout)
		return nil
	case "help":
		printUsage(fs, r.stdout)
		return nil
	case "version":
		return r.versionCommand()
	case "config":
		return r.configCommand(remaining)
	case "doctor":
		if err := noArgs(remaining); err != nil {
			return err
		}
		return r.doctorCommand()
	case "tui":
		if err := noArgs(remaining); err != nil {
			return err
		}
		return r.tuiCommand(ctx)
	case "add", "show_list", "ls", "modify_name", "modify_status", "show_statuses", "delete_task":
		if err := noArgs(remaining); err != nil {
			return err
		}
		return r.taskCommand(command)
	default:
		fmt.Fprintf(r.stderr, "Unknown command: %s\n", command)
		printUsage(fs, r.stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// resolveCommand picks the command from the positional argument, the
// -command flag, or the boolean presence flags, in that order.
func (r *runner) resolveCommand(positional string) (string, error) {
	command := positional
	if r.in.Command != "" {
		if command != "" && command != r.in.Command {
			return "", fmt.Errorf("conflicting commands: %q and -command %q", command, r.in.Command)
		}
		command = r.in.Command
	}
	if command != "" {
		return command, nil
	}
	switch {
	case r.in.ShowStatuses && r.in.DeleteTask:
		return "", fmt.Errorf("conflicting commands: -show_statuses and -delete_task")
	case r.in.ShowStatuses:
		return "show_statuses", nil
	case r.in.DeleteTask:
		return "delete_task", nil
	}
	return "", nil
}

func noArgs(remaining []string) error {
	if len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}
	return nil
}

// openStore loads the configured task file.
func (r *runner) openStore() (*todo.Store, error) {
	cfg := r.cfg.Config
	fileStore := &todo.FileStore{Path: cfg.TasksFile, Strict: cfg.SchemaStrict}
	return todo.Open(fileStore, todo.WithLogger(r.logger.With("path", cfg.TasksFile)))
}

// versionCommand prints version information.
func (r *runner) versionCommand() error {
	fmt.Fprintf(r.stdout, "tasklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - a personal task list kept in a single file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [command] [options]")
	fmt.Fprintln(w, "  tasklist -command <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add             Add a task (-task, -priority)")
	fmt.Fprintln(w, "  show_list, ls   List tasks, highest priority first")
	fmt.Fprintln(w, "  modify_name     Rename a task (-taskID, -new_name)")
	fmt.Fprintln(w, "  modify_status   Change a task status (-taskID, -status)")
	fmt.Fprintln(w, "  show_statuses   Show the status of every task")
	fmt.Fprintln(w, "  delete_task     Delete a task (-taskID)")
	fmt.Fprintln(w, "  tui             Launch terminal UI")
	fmt.Fprintln(w, "  doctor          Check config and task file validity")
	fmt.Fprintln(w, "  config [example]  Show effective config, or an example config file")
	fmt.Fprintln(w, "  version         Show version information")
	fmt.Fprintln(w, "  help            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}
