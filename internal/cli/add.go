package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [task]",
		Short: "Add a new task",
		Long: `Add a new pending task.

Examples:
  tidy add "Buy groceries"
  tidy add Call the plumber`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("task text is empty")
			}

			s := a.newStore()
			if !s.AddTodo(cmd.Context(), text) {
				return storeError(s)
			}

			out := cmd.OutOrStdout()
			todos := s.Todos()
			if len(todos) == 0 {
				fmt.Fprintf(out, "✓ Added: \"%s\"\n", text)
				return nil
			}
			created := todos[len(todos)-1]
			fmt.Fprintf(out, "✓ Added: \"%s\" (%s)\n", created.Task, shortID(created.ID))
			return nil
		},
	}
}
