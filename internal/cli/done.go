package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/tidytask/internal/model"
	"github.com/spf13/cobra"
)

func (a *app) newDoneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done [task-id]",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed. An id prefix is enough.

Examples:
  tidy done 3f2a
  tidy done 3f2a --undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := model.StatusCompleted
			if undo {
				status = model.StatusPending
			}
			return a.setStatus(cmd, args[0], status)
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark task as pending again")
	return cmd
}

func (a *app) newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [task-id]",
		Short: "Mark a task as in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setStatus(cmd, args[0], model.StatusInProgress)
		},
	}
}

func (a *app) newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [task-id] [task]",
		Short: "Change a task's description",
		Long: `Replace the description of a task.

Examples:
  tidy edit 3f2a "Buy oat milk"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return fmt.Errorf("task text is empty")
			}

			s := a.newStore()
			if err := loadTodos(cmd.Context(), s); err != nil {
				return err
			}
			task, err := resolveTask(s.Todos(), args[0])
			if err != nil {
				return err
			}

			if !s.UpdateTodo(cmd.Context(), task.WithText(text)) {
				return storeError(s)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✎ Updated: \"%s\"\n", text)
			return nil
		},
	}
}

func (a *app) setStatus(cmd *cobra.Command, ref string, status model.Status) error {
	s := a.newStore()
	if err := loadTodos(cmd.Context(), s); err != nil {
		return err
	}

	task, err := resolveTask(s.Todos(), ref)
	if err != nil {
		return err
	}

	if !s.UpdateTodo(cmd.Context(), task.WithStatus(status)) {
		return storeError(s)
	}

	out := cmd.OutOrStdout()
	switch status {
	case model.StatusCompleted:
		fmt.Fprintf(out, "✓ Completed: \"%s\"\n", task.Task)
	case model.StatusInProgress:
		fmt.Fprintf(out, "▶ Started: \"%s\"\n", task.Task)
	default:
		fmt.Fprintf(out, "○ Reopened: \"%s\"\n", task.Task)
	}
	return nil
}
