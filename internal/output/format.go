// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

// EmptyMessage is printed for an empty list.
const EmptyMessage = "no tasks"

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n", with a space instead of x for open tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, mark, normalizeText(task.Text))
}

// FormatTaskWithID formats a task line numbered by task id instead of position.
func FormatTaskWithID(w io.Writer, task service.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", task.ID, mark, normalizeText(task.Text))
}

// FormatTasks writes one line per task, numbered from 1, or EmptyMessage
// for an empty list unless quiet.
func FormatTasks(w io.Writer, tasks []service.Task, showIDs, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, EmptyMessage)
		}
		return
	}
	for i, task := range tasks {
		if showIDs {
			FormatTaskWithID(w, task)
			continue
		}
		FormatTask(w, i+1, task)
	}
}

// normalizeText normalizes task text for display.
// - Newlines are replaced with spaces
// - Whitespace-only text becomes "(untitled)"
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
