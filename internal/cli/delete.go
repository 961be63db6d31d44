package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete [task-id]",
		Aliases: []string{"rm"},
		Short:   "Move a task to the trash",
		Long: `Delete a task by its id (or id prefix). Deleted tasks go to the trash.

Examples:
  tidy delete 3f2a
  tidy rm 3f2a --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newStore()
			if err := loadTodos(cmd.Context(), s); err != nil {
				return err
			}

			task, err := resolveTask(s.Todos(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.cfg.ConfirmDelete && !force {
				prompt := fmt.Sprintf("About to delete: \"%s\" (ID: %s)\nAre you sure? [y/N]: ", task.Task, task.ID)
				if !confirm(cmd.InOrStdin(), out, prompt) {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if !s.DeleteTodo(cmd.Context(), task.ID) {
				return storeError(s)
			}

			fmt.Fprintf(out, "🗑️  Moved to trash: \"%s\"\n", task.Task)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Do not ask for confirmation")
	return cmd
}

// confirm prints prompt and reports whether the answer was y/Y
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}
