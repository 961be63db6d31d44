package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newTrashCmd() *cobra.Command {
	trashCmd := &cobra.Command{
		Use:   "trash",
		Short: "Show and manage deleted tasks",
		Long: `List deleted tasks, restore them, or remove them for good.

Examples:
  tidy trash
  tidy trash restore 3f2a
  tidy trash rm 3f2a
  tidy trash empty --force`,
		Args: cobra.NoArgs,
		RunE: a.runTrashList,
	}

	trashCmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List deleted tasks",
		Args:    cobra.NoArgs,
		RunE:    a.runTrashList,
	})

	trashCmd.AddCommand(&cobra.Command{
		Use:   "restore [task-id]",
		Short: "Move a deleted task back to the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newStore()
			if err := loadTrash(cmd.Context(), s); err != nil {
				return err
			}
			task, err := resolveTask(s.Trash(), args[0])
			if err != nil {
				return err
			}

			if !s.RestoreTrash(cmd.Context(), task.ID) {
				return storeError(s)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "↩ Restored: \"%s\"\n", task.Task)
			return nil
		},
	})

	trashCmd.AddCommand(&cobra.Command{
		Use:     "rm [task-id]",
		Aliases: []string{"purge"},
		Short:   "Permanently delete one task from the trash",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.newStore()
			if err := loadTrash(cmd.Context(), s); err != nil {
				return err
			}
			task, err := resolveTask(s.Trash(), args[0])
			if err != nil {
				return err
			}

			if !s.DeleteTrash(cmd.Context(), task.ID) {
				return storeError(s)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✗ Purged: \"%s\"\n", task.Task)
			return nil
		},
	})

	emptyCmd := &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete everything in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			force, _ := cmd.Flags().GetBool("force")
			if !force && !confirm(cmd.InOrStdin(), out, "Permanently delete all trashed tasks? (y/N): ") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}

			s := a.newStore()
			s.EmptyTrash(cmd.Context())
			if _, failed := s.Error(); failed {
				return storeError(s)
			}
			fmt.Fprintln(out, "🧹 Trash emptied.")
			return nil
		},
	}
	emptyCmd.Flags().Bool("force", false, "Do not ask for confirmation")
	trashCmd.AddCommand(emptyCmd)

	return trashCmd
}

func (a *app) runTrashList(cmd *cobra.Command, args []string) error {
	s := a.newStore()
	if err := loadTrash(cmd.Context(), s); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	trash := s.Trash()
	if len(trash) == 0 {
		fmt.Fprintln(out, "Trash is empty.")
		return nil
	}

	printTasks(out, "Trash", trash)
	return nil
}
