package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sqlite-crud/internal/config"
	"sqlite-crud/internal/errors"
	"sqlite-crud/internal/repository/sqlite"
)

func (r *RootCommand) newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through every project and task operation",
		Long: `Create the schema, insert a project with two tasks, update the second task,
query by priority, delete the second task and show the project/task join.

Runs against the configured database; use --db :memory: for a throwaway run.
Rows left by an earlier run are reused, so update and delete still apply.

Loading dated spreadsheets into tables day by day, and checking how repeated
rows are handled, is done with an import plan:

  sqld import --plan day1.yaml
  sqld import --plan day2.yaml
  sqld dump MEP --after-id 1153410`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withSchema(cmd, func(ctx context.Context, repo *sqlite.SQLiteRepository) error {
				return runDemo(ctx, repo, cmd.OutOrStdout())
			})
		},
	}
}

func runDemo(ctx context.Context, repo *sqlite.SQLiteRepository, w io.Writer) error {
	project := &sqlite.Project{Name: "Cool App with SQLite & Go", BeginDate: "2015-01-01", EndDate: "2015-01-30"}
	if _, err := repo.InsertProject(ctx, project); err != nil {
		return err
	}
	if err := resolveProjectID(ctx, repo, project); err != nil {
		return err
	}

	tasks := []*sqlite.Task{
		{Name: "Analyze the requirements of the app", Priority: 1, StatusID: 1, ProjectID: project.ID, BeginDate: "2015-01-01", EndDate: "2015-01-02"},
		{Name: "Confirm with user about the top requirements", Priority: 1, StatusID: 1, ProjectID: project.ID, BeginDate: "2015-01-03", EndDate: "2015-01-05"},
	}
	for _, t := range tasks {
		if _, err := repo.InsertTask(ctx, t); err != nil {
			return err
		}
	}
	if err := resolveTaskIDs(ctx, repo, tasks); err != nil {
		return err
	}

	second := tasks[1].ID
	if _, err := repo.UpdateTask(ctx, sqlite.TaskUpdate{ID: second, Priority: 2, BeginDate: "2015-01-04", EndDate: "2015-01-06"}); err != nil {
		return err
	}

	byPriority, err := repo.ListTasksByPriority(ctx, 1)
	if err != nil {
		return err
	}
	renderTasks(w, "1. Query task by priority", byPriority)

	all, err := repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	renderTasks(w, "2. Query all tasks", all)

	if _, err := repo.DeleteTask(ctx, second); err != nil {
		return err
	}
	all, err = repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	renderTasks(w, "3. Query all tasks", all)

	joined, err := repo.ListProjectTasks(ctx)
	if err != nil {
		return err
	}
	renderProjectTasks(w, "4. Projects x tasks", joined)
	return nil
}

// resolveProjectID fills p.ID from the stored row when the insert was
// ignored as a duplicate.
func resolveProjectID(ctx context.Context, repo *sqlite.SQLiteRepository, p *sqlite.Project) error {
	if p.ID != 0 {
		return nil
	}
	projects, err := repo.ListProjects(ctx)
	if err != nil {
		return err
	}
	for _, stored := range projects {
		if stored.Name == p.Name && stored.BeginDate == p.BeginDate && stored.EndDate == p.EndDate {
			p.ID = stored.ID
			return nil
		}
	}
	return errors.NewNotFoundError("project", p.Name)
}

// resolveTaskIDs does the same for tasks, matching on the unique
// (name, begin_date, end_date) triple.
func resolveTaskIDs(ctx context.Context, repo *sqlite.SQLiteRepository, tasks []*sqlite.Task) error {
	stored, err := repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID != 0 {
			continue
		}
		for _, s := range stored {
			if s.Name == t.Name && s.BeginDate == t.BeginDate && s.EndDate == t.EndDate {
				t.ID = s.ID
				break
			}
		}
		if t.ID == 0 {
			return errors.NewNotFoundError("task", t.Name)
		}
	}
	return nil
}

func (r *RootCommand) newEmployeesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "Run the employee table walkthrough in memory",
		Long: `Insert two employees into a private in-memory database, list them, raise
one's pay, remove the other and list again. The configured database is not
touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
			defer cancel()

			repo, err := sqlite.New(ctx, sqlite.Options{Path: config.MemoryPath, Logger: r.logger})
			if err != nil {
				return err
			}
			defer repo.Close()

			return runEmployees(ctx, repo, cmd.OutOrStdout())
		},
	}
}

func runEmployees(ctx context.Context, repo *sqlite.SQLiteRepository, w io.Writer) error {
	if err := repo.EnsureEmployeeSchema(ctx); err != nil {
		return err
	}

	john := sqlite.Employee{First: "John", Last: "Doe", Pay: 80000}
	jane := sqlite.Employee{First: "Jane", Last: "Doe", Pay: 90000}
	for _, e := range []sqlite.Employee{john, jane} {
		if err := repo.InsertEmployee(ctx, e); err != nil {
			return err
		}
		fmt.Fprintln(w, e)
	}

	emps, err := repo.EmployeesByLastName(ctx, "Doe")
	if err != nil {
		return err
	}
	renderEmployees(w, "Employees named Doe", emps)

	if _, err := repo.UpdatePay(ctx, jane, 95000); err != nil {
		return err
	}
	if _, err := repo.RemoveEmployee(ctx, john); err != nil {
		return err
	}

	emps, err = repo.EmployeesByLastName(ctx, "Doe")
	if err != nil {
		return err
	}
	renderEmployees(w, "After raise and removal", emps)
	return nil
}
