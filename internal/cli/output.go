package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/existflow/tidytask/internal/model"
)

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "[x]"
	case model.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printTasks(w io.Writer, title string, tasks []model.Task) {
	open := 0
	for _, t := range tasks {
		if !t.IsDone() {
			open++
		}
	}

	fmt.Fprintf(w, "\n%s (%d open)\n", title, open)
	fmt.Fprintln(w, strings.Repeat("─", 72))
	for _, t := range tasks {
		printTask(w, t)
	}
	fmt.Fprintln(w)
}

func printTask(w io.Writer, t model.Task) {
	content := ansi.Truncate(t.Task, 40, "...")

	age := ""
	if !t.UpdatedAt.IsZero() {
		age = humanize.Time(t.UpdatedAt)
	}

	fmt.Fprintf(w, "  %s  %-8s  %-40s  %-11s  %s\n", statusIcon(t.Status), shortID(t.ID), content, t.Status, age)
}
