package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/tidytask/internal/model"
	"github.com/spf13/cobra"
)

type listOptions struct {
	filter string
	status string
}

func (a *app) newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List active tasks, optionally filtered by text or status.

Examples:
  tidy list
  tidy list --filter milk
  tidy list --status in-progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Only show tasks containing this text")
	cmd.Flags().StringVarP(&opts.status, "status", "s", "", "Only show tasks with this status ("+statusNames()+")")
	return cmd
}

func statusNames() string {
	names := make([]string, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func (a *app) runList(cmd *cobra.Command, opts listOptions) error {
	var status model.Status
	if opts.status != "" {
		parsed, ok := model.ParseStatus(opts.status)
		if !ok {
			return fmt.Errorf("unknown status: %s (want one of %s)", opts.status, statusNames())
		}
		status = parsed
	}

	s := a.newStore()
	if err := loadTodos(cmd.Context(), s); err != nil {
		return err
	}

	tasks := s.FilterTodos(opts.filter)
	if status != "" {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.Status == status {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found. Add one with: tidy add \"Your task\"")
		return nil
	}

	printTasks(out, "Todos", tasks)
	return nil
}
