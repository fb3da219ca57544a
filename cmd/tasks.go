package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/tasklist-go/internal/todo"
)

const noTasksMessage = "There are no tasks in the list.."

// taskCommand checks the inputs of a task command, then opens the store and
// runs it. Missing inputs are reported as a usage message without touching
// the task file.
func (r *runner) taskCommand(command string) error {
	if msg := missingInputs(command, r.in); msg != "" {
		fmt.Fprintln(r.stderr, msg)
		return nil
	}

	store, err := r.openStore()
	if err != nil {
		return err
	}

	switch command {
	case "add":
		return r.addTask(store)
	case "show_list", "ls":
		r.showList(store)
		return nil
	case "modify_name":
		return r.modifyName(store)
	case "modify_status":
		return r.modifyStatus(store)
	case "show_statuses":
		r.showStatuses(store)
		return nil
	case "delete_task":
		return r.deleteTask(store)
	}
	return fmt.Errorf("unknown command: %s", command)
}

// missingInputs returns the usage message for a command whose required
// inputs are missing, or "". A task id of zero or less counts as missing.
func missingInputs(command string, in Input) string {
	switch command {
	case "add":
		if strings.TrimSpace(in.Task) == "" || strings.TrimSpace(in.Priority) == "" {
			return "For adding a task to the list, -task and -priority are required"
		}
	case "modify_name":
		if in.TaskID <= 0 || strings.TrimSpace(in.NewName) == "" {
			return "Modifying a task name requires -taskID and -new_name"
		}
	case "modify_status":
		if in.TaskID <= 0 || strings.TrimSpace(in.Status) == "" {
			return "Updating a task status requires -taskID and -status"
		}
	case "delete_task":
		if in.TaskID <= 0 {
			return "Deleting a task requires -taskID"
		}
	}
	return ""
}

func (r *runner) addTask(store *todo.Store) error {
	priority := todo.Priority(r.in.Priority)
	if !priority.Known() {
		r.logger.Warn("unknown priority, task will sort last", "priority", r.in.Priority)
	}
	task, err := store.Add(r.in.Task, priority)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, " Added: %s to the To Do list, time task added: %s\n",
		task.Name, r.now().Format(r.cfg.Config.TimeFormat))
	return nil
}

func (r *runner) showList(store *todo.Store) {
	tasks := store.List()
	if len(tasks) == 0 {
		fmt.Fprintln(r.stdout, noTasksMessage)
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(r.stdout, "Task ID: %d, Task Name: %s, priority: %s ,status: %s\n",
			t.ID, t.Name, t.Priority, t.Status)
	}
}

func (r *runner) modifyName(store *todo.Store) error {
	found, err := store.Rename(r.in.TaskID, r.in.NewName)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(r.stdout, "task with id: %d was not found\n", r.in.TaskID)
		return nil
	}
	fmt.Fprintf(r.stdout, "task with id: %d has been modified successfully\n", r.in.TaskID)
	return nil
}

func (r *runner) modifyStatus(store *todo.Store) error {
	found, err := store.SetStatus(r.in.TaskID, r.in.Status)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(r.stdout, "Task number %d does not exist in the list\n", r.in.TaskID)
		return nil
	}
	fmt.Fprintf(r.stdout, "Task status was updated to %s! Time of update: %s\n",
		r.in.Status, r.now().Format(r.cfg.Config.TimeFormat))
	return nil
}

// showStatuses prints one line per task in stored order. An empty list
// prints nothing.
func (r *runner) showStatuses(store *todo.Store) {
	for _, t := range store.Tasks() {
		fmt.Fprintf(r.stdout, "Task name: %s, status: %s\n", t.Name, t.Status)
	}
}

func (r *runner) deleteTask(store *todo.Store) error {
	found, err := store.Delete(r.in.TaskID)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(r.stdout, "Task with ID %d not found.\n", r.in.TaskID)
		return nil
	}
	fmt.Fprintf(r.stdout, "Task with ID: %d deleted successfully\n", r.in.TaskID)
	return nil
}
