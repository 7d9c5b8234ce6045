package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sqlite-crud/internal/errors"
	"sqlite-crud/internal/repository/sqlite"
)

func (r *RootCommand) newTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Insert, update, delete and list tasks",
	}
	taskCmd.AddCommand(
		r.newTaskAddCommand(),
		r.newTaskUpdateCommand(),
		r.newTaskDeleteCommand(),
		r.newTaskListCommand(),
	)
	return taskCmd
}

func (r *RootCommand) newTaskAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PRIORITY STATUS_ID PROJECT_ID BEGIN_DATE END_DATE",
		Short: "Insert a task",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts([]string{"priority", "status_id", "project_id"}, args[1:4])
			if err != nil {
				return err
			}
			task := &sqlite.Task{
				Name:      args[0],
				Priority:  nums[0],
				StatusID:  nums[1],
				ProjectID: nums[2],
				BeginDate: args[4],
				EndDate:   args[5],
			}

			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				if _, err := repo.InsertTask(qctx, task); err != nil {
					return err
				}
				if task.ID == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Task %q already exists, nothing inserted\n", task.Name)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created task %d\n", task.ID)
				return nil
			})
		},
	}
}

func (r *RootCommand) newTaskUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update ID PRIORITY BEGIN_DATE END_DATE",
		Short: "Update the priority and dates of a task",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseInts([]string{"id", "priority"}, args[:2])
			if err != nil {
				return err
			}
			update := sqlite.TaskUpdate{ID: nums[0], Priority: nums[1], BeginDate: args[2], EndDate: args[3]}

			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				n, err := repo.UpdateTask(qctx, update)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d task(s)\n", n)
				return nil
			})
		},
	}
}

func (r *RootCommand) newTaskDeleteCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "delete [ID]",
		Short: "Delete a task, or every task with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.NewInvalidInputError("id", args, "give either a task ID or --all")
			}

			var id int64
			if !all {
				var err error
				if id, err = parseInt("id", args[0]); err != nil {
					return err
				}
			}

			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				var n int64
				var err error
				if all {
					n, err = repo.DeleteAllTasks(qctx)
				} else {
					n, err = repo.DeleteTask(qctx, id)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s)\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete every task")
	return cmd
}

func (r *RootCommand) newTaskListCommand() *cobra.Command {
	var priority int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally only those of one priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			byPriority := cmd.Flags().Changed("priority")

			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				var tasks []*sqlite.Task
				var err error
				title := "Tasks"
				if byPriority {
					tasks, err = repo.ListTasksByPriority(qctx, priority)
					title = fmt.Sprintf("Tasks with priority %d", priority)
				} else {
					tasks, err = repo.ListTasks(qctx)
				}
				if err != nil {
					return err
				}
				renderTasks(cmd.OutOrStdout(), title, tasks)
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&priority, "priority", "p", 0, "Only tasks with this priority")
	return cmd
}
