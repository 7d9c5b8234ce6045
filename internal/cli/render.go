package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"sqlite-crud/internal/repository/sqlite"
)

var taskHeader = []any{"ID", "Name", "Priority", "Status", "Project", "Begin", "End"}

// renderRows prints rows as a light box table. NULL cells print as NULL.
func renderRows(w io.Writer, title string, header []any, rows [][]any) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	if title != "" {
		tw.SetTitle("%s", title)
	}
	tw.AppendHeader(table.Row(header))
	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, v := range row {
			if v == nil {
				v = "NULL"
			}
			cells[i] = v
		}
		tw.AppendRow(cells)
	}
	tw.Render()
}

func renderTasks(w io.Writer, title string, tasks []*sqlite.Task) {
	rows := make([][]any, len(tasks))
	for i, t := range tasks {
		rows[i] = t.Values()
	}
	renderRows(w, title, taskHeader, rows)
}

func renderProjects(w io.Writer, title string, projects []*sqlite.Project) {
	rows := make([][]any, len(projects))
	for i, p := range projects {
		rows[i] = []any{p.ID, p.Name, p.BeginDate, p.EndDate}
	}
	renderRows(w, title, []any{"ID", "Name", "Begin", "End"}, rows)
}

func renderProjectTasks(w io.Writer, title string, joined []*sqlite.ProjectTask) {
	rows := make([][]any, len(joined))
	for i, pt := range joined {
		rows[i] = []any{pt.ProjectName, pt.TaskName, pt.ProjectID, pt.TaskID, pt.StatusID}
	}
	renderRows(w, title, []any{"Project", "Task", "Project ID", "Task ID", "Status"}, rows)
}

func renderEmployees(w io.Writer, title string, emps []*sqlite.Employee) {
	rows := make([][]any, len(emps))
	for i, e := range emps {
		rows[i] = []any{e.FullName(), e.Email(), e.Pay}
	}
	renderRows(w, title, []any{"Name", "Email", "Pay"}, rows)
}
