package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"sqlite-crud/internal/repository/sqlite"
)

func (r *RootCommand) newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the projects and tasks tables",
		Long:  "Create the projects and tasks tables if they do not exist. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Schema ready in %s\n", repo.Path())
				return nil
			})
		},
	}
}

func (r *RootCommand) newProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Insert and show projects",
	}

	addCmd := &cobra.Command{
		Use:   "add NAME BEGIN_DATE END_DATE",
		Short: "Insert a project",
		Long:  "Insert a project. A project with the same name and dates is silently kept as is.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				project := &sqlite.Project{Name: args[0], BeginDate: args[1], EndDate: args[2]}
				if _, err := repo.InsertProject(qctx, project); err != nil {
					return err
				}
				if project.ID == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Project %q already exists, nothing inserted\n", project.Name)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %d\n", project.ID)
				return nil
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("id", args[0])
			if err != nil {
				return err
			}
			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				project, err := repo.GetProject(qctx, id)
				if err != nil {
					return err
				}
				renderProjects(cmd.OutOrStdout(), "", []*sqlite.Project{project})
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				projects, err := repo.ListProjects(qctx)
				if err != nil {
					return err
				}
				renderProjects(cmd.OutOrStdout(), "Projects", projects)
				return nil
			})
		},
	}

	projectCmd.AddCommand(addCmd, showCmd, listCmd)
	return projectCmd
}

func (r *RootCommand) newJoinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Show projects joined with tasks",
		Long: `Show the inner join of projects and tasks.

Rows are paired on project ID = task ID, not on the task's project_id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				qctx, cancel := r.queryContext(ctx)
				defer cancel()

				joined, err := repo.ListProjectTasks(qctx)
				if err != nil {
					return err
				}
				renderProjectTasks(cmd.OutOrStdout(), "Projects x tasks", joined)
				return nil
			})
		},
	}
}
